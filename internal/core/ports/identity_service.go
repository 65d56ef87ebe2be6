package ports

import (
	"context"

	"github.com/fastfix/marketplace-api/internal/core/domain"
)

type RegisterCustomerInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type RegisterWorkerInput struct {
	Email        string
	Password     string
	Name         string
	Phone        string
	Skills       []string
	Experience   string
	HourlyRate   float64
	ResponseTime string
}

// ProfileUpdate is a partial field set; nil means "leave unchanged".
// Email and Role are present so callers can attempt to set them, but the
// identity service strips both before the merge; they are immutable.
type ProfileUpdate struct {
	Email        *string
	Role         *string
	Name         *string
	Phone        *string
	Skills       *[]string
	Experience   *string
	HourlyRate   *float64
	ResponseTime *string
}

// AuthResult pairs a sanitized account with a freshly issued bearer token.
type AuthResult struct {
	Account *domain.Account
	Token   string
}

type IdentityService interface {
	RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*AuthResult, error)
	RegisterWorker(ctx context.Context, in RegisterWorkerInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*domain.Account, error)
}
