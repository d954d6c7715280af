package auth

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

// UserStorage defines the user lookup the password authenticator needs.
type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator checks email/password pairs against bcrypt hashes.
type PasswordAuthenticator struct {
	storage  UserStorage
	validate *validator.Validate
}

func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SignIn returns the user owning creds. Malformed credentials, unknown
// emails and wrong passwords are all CredentialsSignin.
func (a *PasswordAuthenticator) SignIn(ctx context.Context, provider string, creds Credentials) (*models.User, error) {
	if provider != ProviderCredentials {
		return nil, &Error{Type: InvalidProvider}
	}
	if err := a.validate.Struct(creds); err != nil {
		return nil, &Error{Type: CredentialsSignin, Err: err}
	}

	user, err := a.storage.GetUserByEmail(ctx, creds.Email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil, &Error{Type: CredentialsSignin, Err: err}
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		return nil, &Error{Type: CallbackRouteError, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, &Error{Type: CredentialsSignin, Err: err}
		}
		return nil, &Error{Type: CallbackRouteError, Err: err}
	}
	return user, nil
}
