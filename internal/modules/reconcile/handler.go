package reconcile

import (
	"errors"
	"net/http"

	"petcarehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the processor-facing endpoints. The group is expected
// to carry the webhook token middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
	rg.POST("/payments/reconcile", h.Reconcile)
}

func (h *Handler) Webhook(c *gin.Context) {
	var ev WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event payload")
		return
	}

	res, err := h.service.HandleWebhook(c.Request.Context(), ev)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Reconcile is the manual trigger for a completion, used by operators when a
// webhook delivery was missed.
func (h *Handler) Reconcile(c *gin.Context) {
	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ReconcileCompletion(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Payment not found")
	case errors.Is(err, ErrNoMatchingBooking):
		response.Error(c, http.StatusUnprocessableEntity, "NO_MATCHING_BOOKING", "No booking matches this payment")
	case errors.Is(err, ErrTimeout):
		response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage timed out, retry later")
	default:
		response.Internal(c, "Reconciliation failed")
	}
}
