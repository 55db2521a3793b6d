package user_service

import "fmt"

var (
	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrUserAlreadyExists = fmt.Errorf("user already exists")
	ErrIncorrectPassword = fmt.Errorf("incorrect email or password")
	ErrIncorrectPin      = fmt.Errorf("incorrect transaction pin")
	ErrPinNotSet         = fmt.Errorf("transaction pin has not been set")
)
