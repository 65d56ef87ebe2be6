package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fastfix/marketplace-api/internal/api/metrics"
	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

// WorkerHandler serves the worker directory and contact initiation.
type WorkerHandler struct {
	directory ports.DirectoryService
	gateway   ports.NotificationGateway
}

func NewWorkerHandler(directory ports.DirectoryService, gateway ports.NotificationGateway) *WorkerHandler {
	return &WorkerHandler{directory: directory, gateway: gateway}
}

// List handles GET /workers.
//
// @Summary      List all workers, highest rated first
// @Tags         workers
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      500  {object}  errorResponse
// @Router       /workers [get]
func (h *WorkerHandler) List(c echo.Context) error {
	workers, err := h.directory.ListWorkers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("all").Inc()
	return c.JSON(http.StatusOK, toUserResponses(workers))
}

// ListBySkill handles GET /workers/skill/:skill.
//
// @Summary      List workers matching a skill
// @Tags         workers
// @Produce      json
// @Param        skill  path      string  true  "Skill tag, matched as a case-insensitive substring"
// @Success      200    {array}   userResponse
// @Failure      500    {object}  errorResponse
// @Router       /workers/skill/{skill} [get]
func (h *WorkerHandler) ListBySkill(c echo.Context) error {
	workers, err := h.directory.ListWorkersBySkill(c.Request().Context(), c.Param("skill"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("skill").Inc()
	return c.JSON(http.StatusOK, toUserResponses(workers))
}

// Get handles GET /workers/:id.
//
// @Summary      Get a single worker
// @Tags         workers
// @Produce      json
// @Param        id   path      string  true  "Worker account id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /workers/{id} [get]
func (h *WorkerHandler) Get(c echo.Context) error {
	worker, err := h.directory.GetWorkerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Worker not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("id").Inc()
	return c.JSON(http.StatusOK, toUserResponse(worker))
}

// Call handles POST /workers/:id/call — initiates a voice call to the worker.
//
// @Summary      Call a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Worker account id"
// @Param        body  body      contactRequest  true  "Caller details"
// @Success      200   {object}  contactResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /workers/{id}/call [post]
func (h *WorkerHandler) Call(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	worker, err := h.directory.GetWorkerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Worker not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	callSID, err := h.gateway.PlaceCall(c.Request().Context(), worker.ID, worker.Phone)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("call", "error").Inc()
		return gatewayError(c, err)
	}

	metrics.NotificationsTotal.WithLabelValues("call", "sent").Inc()
	return c.JSON(http.StatusOK, contactResponse{
		Success: true,
		Message: "Call initiated to customer",
		CallSID: callSID,
	})
}

// Message handles POST /workers/:id/message — texts a booking request to the worker.
//
// @Summary      Message a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Worker account id"
// @Param        body  body      contactRequest  true  "Caller details"
// @Success      200   {object}  contactResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /workers/{id}/message [post]
func (h *WorkerHandler) Message(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	worker, err := h.directory.GetWorkerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Worker not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	body := fmt.Sprintf(
		"Hello %s, You have received a new service booking request from one of our customers. "+
			"If you are available to take the job, please confirm your availability.",
		worker.Name,
	)
	if err := h.gateway.SendMessage(c.Request().Context(), worker.ID, worker.Phone, body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("sms", "error").Inc()
		return gatewayError(c, err)
	}

	metrics.NotificationsTotal.WithLabelValues("sms", "sent").Inc()
	return c.JSON(http.StatusOK, contactResponse{
		Success: true,
		Message: "message sent to customer",
	})
}

func gatewayError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrGatewayUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "notification gateway unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
