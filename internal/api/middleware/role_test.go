package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

type stubRepo struct {
	accounts map[string]*domain.Account
}

func (r *stubRepo) Create(context.Context, *domain.Account) (*domain.Account, error) {
	panic("not used")
}

func (r *stubRepo) FindByEmail(context.Context, string) (*domain.Account, error) {
	panic("not used")
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (r *stubRepo) ListWorkers(context.Context) ([]*domain.Account, error) {
	panic("not used")
}

func (r *stubRepo) Update(context.Context, string, ports.ProfileUpdate) (*domain.Account, error) {
	panic("not used")
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{accounts: map[string]*domain.Account{
		"acc_1": {ID: "acc_1", Role: domain.RoleCustomer},
	}}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, "acc_1")

	called := false
	handler := RequireRole(repo, domain.RoleCustomer)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_ForbidsWrongRole(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{accounts: map[string]*domain.Account{
		"acc_2": {ID: "acc_2", Role: domain.RoleWorker},
	}}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, "acc_2")

	handler := RequireRole(repo, domain.RoleCustomer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_UnknownAccount(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{accounts: map[string]*domain.Account{}}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUserID, "ghost")

	handler := RequireRole(repo, domain.RoleCustomer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{accounts: map[string]*domain.Account{}}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(repo, domain.RoleCustomer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
