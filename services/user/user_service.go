package user_service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
)

type UserService struct {
	store  *store.Store
	logger *logging.Logger
}

func NewUserService(store *store.Store, logger *logging.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the user and their NGN wallet in one transaction.
func (u *UserService) Register(ctx context.Context, arg RegisterParams) (*store.User, *store.Wallet, error) {
	passwordHash, err := utils.GenerateHashValue(arg.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to hash password: %w", err)
	}

	var newUser store.User
	var newWallet store.Wallet

	err = u.store.ExecTx(ctx, func(q *store.Queries) error {
		var txErr error
		newUser, txErr = q.CreateUser(ctx, store.CreateUserParams{
			Email:        arg.Email,
			PasswordHash: passwordHash,
			FirstName:    arg.FirstName,
			LastName:     arg.LastName,
			Role:         "user",
		})
		if txErr != nil {
			if store.IsDuplicateEntry(txErr) {
				return ErrUserAlreadyExists
			}
			return txErr
		}

		newWallet, txErr = q.CreateWallet(ctx, store.CreateWalletParams{
			CustomerID: newUser.ID,
			Currency:   "NGN",
		})
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	return &newUser, &newWallet, nil
}

func (u *UserService) Login(ctx context.Context, email, password string) (*store.User, error) {
	dbUser, err := u.store.GetUserByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if err := utils.VerifyHashValue(password, dbUser.PasswordHash); err != nil {
		return nil, ErrIncorrectPassword
	}

	return &dbUser, nil
}

// Profile returns the user together with their wallet.
func (u *UserService) Profile(ctx context.Context, userID int64) (*store.User, *store.Wallet, error) {
	dbUser, err := u.store.GetUserByID(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrUserNotFound
	} else if err != nil {
		return nil, nil, err
	}

	wallet, err := u.store.GetWalletByCustomerID(ctx, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, nil, err
	}

	return &dbUser, &wallet, nil
}

// SetTransactionPin stores a bcrypt digest of the PIN. When a PIN already
// exists the old one must be presented.
func (u *UserService) SetTransactionPin(ctx context.Context, userID int64, oldPin, newPin string) error {
	dbUser, err := u.store.GetUserByID(ctx, userID)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}

	if dbUser.TransactionPin.Valid {
		if oldPin == "" {
			return ErrIncorrectPin
		}
		if err := utils.VerifyHashValue(oldPin, dbUser.TransactionPin.String); err != nil {
			return ErrIncorrectPin
		}
	}

	pinHash, err := utils.GenerateHashValue(newPin)
	if err != nil {
		return fmt.Errorf("unable to hash pin: %w", err)
	}

	return u.store.UpdateUserTransactionPin(ctx, userID, pinHash)
}

// VerifyTransactionPin compares a submitted PIN against the stored digest.
func (u *UserService) VerifyTransactionPin(ctx context.Context, userID int64, pin string) error {
	dbUser, err := u.store.GetUserByID(ctx, userID)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}

	if !dbUser.TransactionPin.Valid {
		return ErrPinNotSet
	}

	if err := utils.VerifyHashValue(pin, dbUser.TransactionPin.String); err != nil {
		return ErrIncorrectPin
	}

	return nil
}

func (u *UserService) RegisterDeviceToken(ctx context.Context, userID int64, token string) error {
	return u.store.UpdateUserFCMToken(ctx, userID, token)
}
