package delivery

import (
	"encoding/json"
	"net/http"
	"time"

	"milkroute/internal/shared/apperror"
	"milkroute/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseLock frees the idempotency lock once the handler is done; the cached
// response (if any) takes over answering retries from here.
func (h *Handler) releaseLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

func (h *Handler) cacheResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}

func (h *Handler) RecordDelivered(c *gin.Context) {
	defer h.releaseLock(c)

	accountID := c.GetString("user_id_validated")

	var req RecordDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordDelivered(c.Request.Context(), accountID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.cacheResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RecordNotDelivered(c *gin.Context) {
	defer h.releaseLock(c)

	accountID := c.GetString("user_id_validated")

	var req RecordNotDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RecordNotDelivered(c.Request.Context(), accountID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.cacheResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByDay(c *gin.Context) {
	accountID := c.GetString("user_id_validated")

	resp, err := h.service.ListByDay(c.Request.Context(), accountID, c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
