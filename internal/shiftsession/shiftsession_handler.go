package shiftsession

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

func (h *Handler) SelectShift(c *gin.Context) {
	accountID := c.GetString("user_id_validated")

	var req SelectShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SelectShift(c.Request.Context(), accountID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSession(c *gin.Context) {
	accountID := c.GetString("user_id_validated")

	resp, err := h.service.GetSession(c.Request.Context(), accountID, c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListClients(c *gin.Context) {
	accountID := c.GetString("user_id_validated")

	resp, err := h.service.ListClients(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
