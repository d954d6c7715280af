package auth

import (
	"context"
	"errors"
	"fmt"

	"invoice-dashboard-backend/internal/models"
)

// ProviderCredentials is the email/password sign-in provider.
const ProviderCredentials = "credentials"

// ErrorType classifies sign-in failures.
type ErrorType string

const (
	// CredentialsSignin means the submitted email/password were rejected.
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError covers failures inside the provider itself.
	CallbackRouteError ErrorType = "CallbackRouteError"
	// InvalidProvider is returned for an unknown provider name.
	InvalidProvider ErrorType = "InvalidProvider"
)

// Error is an authentication failure raised by an Authenticator.
type Error struct {
	Type ErrorType
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Credentials is the submitted login form.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// Authenticator verifies credentials for a named provider. Rejections are
// reported as *Error; anything else is an unexpected failure.
type Authenticator interface {
	SignIn(ctx context.Context, provider string, creds Credentials) (*models.User, error)
}

// User-facing sign-in messages.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

// Authenticate signs in with the credentials provider and turns known
// failures into a form message. prevState is the message of the previous
// attempt and does not influence the result. Errors that are not *Error are
// returned unchanged.
func Authenticate(ctx context.Context, a Authenticator, prevState string, creds Credentials) (*models.User, string, error) {
	user, err := a.SignIn(ctx, ProviderCredentials, creds)
	if err == nil {
		return user, "", nil
	}

	var authErr *Error
	if !errors.As(err, &authErr) {
		return nil, "", err
	}
	switch authErr.Type {
	case CredentialsSignin:
		return nil, MsgInvalidCredentials, nil
	default:
		return nil, MsgSomethingWentWrong, nil
	}
}
