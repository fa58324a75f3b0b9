package cleanup

import (
	"errors"
	"net/http"
	"strconv"

	"petcarehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/bookings/cleanup-duplicates/:ownerId", h.CleanupDuplicates)
}

func (h *Handler) CleanupDuplicates(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("ownerId"), 10, 64)
	if err != nil || ownerID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid owner id")
		return
	}

	res, err := h.service.CleanupDuplicates(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			response.Error(c, http.StatusServiceUnavailable, "STORE_TIMEOUT", "Storage timed out, retry later")
			return
		}
		response.Internal(c, "Duplicate cleanup failed")
		return
	}

	response.Success(c, http.StatusOK, res)
}
