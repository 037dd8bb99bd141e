package analytics

import (
	"net/http"

	"milkroute/internal/shared/apperror"
	"milkroute/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	resp, err := h.service.GetDashboard(c.Request.Context(), c.Query("date"), c.Query("shift"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTrends(c *gin.Context) {
	resp, err := h.service.GetTrends(
		c.Request.Context(),
		c.Query("period"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetNonDeliveryReasons(c *gin.Context) {
	resp, err := h.service.GetNonDeliveryReasons(
		c.Request.Context(),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
