package payment

import (
	"errors"
	"net/http"
	"time"

	"petcarehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/intent", h.IssueIntent)
	rg.GET("/payments/status/:reference", h.PaymentStatus)
	rg.GET("/payments/history", h.PaymentHistory)
}

func (h *Handler) IssueIntent(c *gin.Context) {
	var req IssueIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.UserID == 0 {
		req.UserID = c.GetInt64("user_id")
	}

	resp, err := h.service.IssueIntent(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrServiceNotFound):
			response.NotFound(c, "Service not found")
		case errors.Is(err, ErrDuplicateReference):
			response.Error(c, http.StatusConflict, "DUPLICATE_REFERENCE", "Payment reference already registered")
		default:
			response.Internal(c, "Failed to issue payment intent")
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) PaymentStatus(c *gin.Context) {
	ref := c.Param("reference")

	p, err := h.service.GetStatus(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Payment not found")
			return
		}
		response.Internal(c, "Failed to fetch payment")
		return
	}

	resp := PaymentStatusResponse{
		ID:                p.ID,
		ExternalReference: p.ExternalReference,
		ServiceName:       p.ServiceName,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.CompletedAt != nil {
		resp.CompletedAt = p.CompletedAt.Format(time.RFC3339)
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) PaymentHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	payments, err := h.service.GetHistory(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to fetch payment history")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}
