package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

type stubIdentityService struct {
	registerCustomerFn func(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error)
	registerWorkerFn   func(ctx context.Context, in ports.RegisterWorkerInput) (*ports.AuthResult, error)
	loginFn            func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	updateFn           func(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error)
}

func (s *stubIdentityService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error) {
	return s.registerCustomerFn(ctx, in)
}

func (s *stubIdentityService) RegisterWorker(ctx context.Context, in ports.RegisterWorkerInput) (*ports.AuthResult, error) {
	return s.registerWorkerFn(ctx, in)
}

func (s *stubIdentityService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubIdentityService) UpdateProfile(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
	return s.updateFn(ctx, id, in)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_RegisterCustomer_Success(t *testing.T) {
	stub := &stubIdentityService{
		registerCustomerFn: func(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error) {
			if in.Email != "alice@example.com" || in.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Account: &domain.Account{ID: "acc_1", Email: in.Email, Name: in.Name, Role: domain.RoleCustomer},
				Token:   "token123",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"secret","name":"Alice","phone":"123"}`)
	if err := h.RegisterCustomer(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "acc_1" || user["role"] != "customer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password in response payload")
	}
	// Worker-only fields present with empty defaults for customers.
	if skills, ok := user["skills"].([]any); !ok || len(skills) != 0 {
		t.Fatalf("expected empty skills array, got %v", user["skills"])
	}
	if user["hourlyRate"] != float64(0) {
		t.Fatalf("expected zero hourlyRate, got %v", user["hourlyRate"])
	}
	if user["experience"] != "" || user["responseTime"] != "" {
		t.Fatalf("expected empty experience/responseTime, got %v / %v", user["experience"], user["responseTime"])
	}
}

func TestAuthHandler_RegisterCustomer_DuplicateEmail(t *testing.T) {
	stub := &stubIdentityService{
		registerCustomerFn: func(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error) {
			return nil, domain.ErrEmailExists
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"dup@example.com","password":"secret"}`)
	_ = h.RegisterCustomer(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_RegisterCustomer_InvalidEmail(t *testing.T) {
	stub := &stubIdentityService{
		registerCustomerFn: func(ctx context.Context, in ports.RegisterCustomerInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"not-an-email","password":"secret"}`)
	_ = h.RegisterCustomer(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_RegisterWorker_PassesAttributes(t *testing.T) {
	stub := &stubIdentityService{
		registerWorkerFn: func(ctx context.Context, in ports.RegisterWorkerInput) (*ports.AuthResult, error) {
			if len(in.Skills) != 2 || in.Skills[0] != "Plumbing" || in.HourlyRate != 250 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Account: &domain.Account{
					ID: "acc_2", Email: in.Email, Role: domain.RoleWorker,
					Worker: &domain.WorkerProfile{Skills: in.Skills, HourlyRate: in.HourlyRate},
				},
				Token: "t",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register/worker",
		`{"email":"bob@example.com","password":"pw","skills":["Plumbing","Electrical"],"hourlyRate":250}`)
	if err := h.RegisterWorker(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"bad"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				Account: &domain.Account{ID: "acc_1", Email: email, Role: domain.RoleCustomer},
				Token:   "token123",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_MissingID(t *testing.T) {
	stub := &stubIdentityService{
		updateFn: func(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
			if id != "" {
				t.Fatalf("expected empty id, got %q", id)
			}
			return nil, domain.ErrMissingID
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/update", `{"name":"No ID"}`)
	_ = h.UpdateProfile(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_NotFound(t *testing.T) {
	stub := &stubIdentityService{
		updateFn: func(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/update", `{"id":"ghost","name":"X"}`)
	_ = h.UpdateProfile(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	stub := &stubIdentityService{
		updateFn: func(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
			if id != "acc_1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Name == nil || *in.Name != "New Name" {
				t.Fatalf("name not forwarded: %+v", in)
			}
			if in.Phone != nil {
				t.Fatalf("absent fields must stay nil")
			}
			return &domain.Account{ID: id, Email: "a@example.com", Name: *in.Name, Role: domain.RoleCustomer}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/update", `{"id":"acc_1","name":"New Name"}`)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["name"] != "New Name" {
		t.Fatalf("unexpected payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password in update response")
	}
}
