package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

// IdentityService implements registration, login, and profile updates.
type IdentityService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewIdentityService returns an IdentityService. A tokenTTL of zero or less
// issues tokens without an exp claim; they stay valid until the session that
// holds them is cleared.
func NewIdentityService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *IdentityService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error) {
	account := &domain.Account{
		Email: in.Email,
		Name:  in.Name,
		Phone: in.Phone,
		Role:  domain.RoleCustomer,
	}
	return s.register(ctx, account, in.Password)
}

// RegisterWorker persists the supplied worker attributes verbatim. The skill
// vocabulary, experience text, and rate are free-form at this layer.
func (s *IdentityService) RegisterWorker(ctx context.Context, in ports.RegisterWorkerInput) (*ports.AuthResult, error) {
	account := &domain.Account{
		Email: in.Email,
		Name:  in.Name,
		Phone: in.Phone,
		Role:  domain.RoleWorker,
		Worker: &domain.WorkerProfile{
			Skills:       in.Skills,
			Experience:   in.Experience,
			HourlyRate:   in.HourlyRate,
			ResponseTime: in.ResponseTime,
		},
	}
	return s.register(ctx, account, in.Password)
}

func (s *IdentityService) register(ctx context.Context, account *domain.Account, password string) (*ports.AuthResult, error) {
	_, err := s.repo.FindByEmail(ctx, account.Email)
	if err == nil {
		return nil, domain.ErrEmailExists
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", created.Role).Msg("account registered")
	return &ports.AuthResult{Account: created.Sanitized(), Token: token}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Account: account.Sanitized(), Token: token}, nil
}

// UpdateProfile applies a partial merge onto the stored account. Email and
// role are stripped unconditionally before the merge, whatever the caller
// supplied. The result is always sanitized.
func (s *IdentityService) UpdateProfile(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
	if id == "" {
		return nil, domain.ErrMissingID
	}

	// Immutable after creation.
	in.Email = nil
	in.Role = nil

	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", id).Msg("profile updated")
	return updated.Sanitized(), nil
}

func (s *IdentityService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id": account.ID,
	}
	if s.tokenTTL > 0 {
		claims["exp"] = time.Now().Add(s.tokenTTL).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
