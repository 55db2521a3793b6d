package store

import (
	"context"
	"database/sql"
	"time"
)

type User struct {
	ID             int64
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Role           string
	TransactionPin sql.NullString
	FCMToken       sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const createUser = `
INSERT INTO users (email, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password_hash, first_name, last_name, role, transaction_pin, fcm_token, created_at, updated_at
`

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email,
		arg.PasswordHash,
		arg.FirstName,
		arg.LastName,
		arg.Role,
	)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.TransactionPin,
		&u.FCMToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, first_name, last_name, role, transaction_pin, fcm_token, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.TransactionPin,
		&u.FCMToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, first_name, last_name, role, transaction_pin, fcm_token, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.TransactionPin,
		&u.FCMToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const updateUserTransactionPin = `
UPDATE users
SET transaction_pin = $2, updated_at = NOW()
WHERE id = $1
`

func (q *Queries) UpdateUserTransactionPin(ctx context.Context, id int64, pinHash string) error {
	_, err := q.db.ExecContext(ctx, updateUserTransactionPin, id, pinHash)
	return err
}

const updateUserFCMToken = `
UPDATE users
SET fcm_token = $2, updated_at = NOW()
WHERE id = $1
`

func (q *Queries) UpdateUserFCMToken(ctx context.Context, id int64, token string) error {
	_, err := q.db.ExecContext(ctx, updateUserFCMToken, id, token)
	return err
}
