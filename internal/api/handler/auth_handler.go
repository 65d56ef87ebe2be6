package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fastfix/marketplace-api/internal/api/metrics"
	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RegisterCustomer creates a customer account and issues a token.
//
// @Summary      Register a customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerCustomerRequest  true  "Customer registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.identity.RegisterCustomer(c.Request().Context(), ports.RegisterCustomerInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return registerError(c, err)
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleCustomer).Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// RegisterWorker creates a worker account and issues a token.
//
// @Summary      Register a worker account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerWorkerRequest  true  "Worker registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register/worker [post]
func (h *AuthHandler) RegisterWorker(c echo.Context) error {
	var req registerWorkerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.identity.RegisterWorker(c.Request().Context(), ports.RegisterWorkerInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Phone:        req.Phone,
		Skills:       req.Skills,
		Experience:   req.Experience,
		HourlyRate:   req.HourlyRate,
		ResponseTime: req.ResponseTime,
	})
	if err != nil {
		return registerError(c, err)
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleWorker).Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Login authenticates an account and returns a fresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.identity.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// UpdateProfile applies a partial update to an account.
//
// @Summary      Update an account profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Account id plus partial fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/update [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	updated, err := h.identity.UpdateProfile(c.Request().Context(), req.ID, toProfileUpdate(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingID):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "User ID is required."})
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found."})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to update user profile."})
		}
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func registerError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrEmailExists) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email already exists"})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
