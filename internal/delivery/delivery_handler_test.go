package delivery_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"milkroute/internal/delivery"
	deliveryerrors "milkroute/internal/delivery/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	recordDeliveredFn    func(ctx context.Context, accountID string, req delivery.RecordDeliveredRequest) (delivery.DeliveryRecordResponse, error)
	recordNotDeliveredFn func(ctx context.Context, accountID string, req delivery.RecordNotDeliveredRequest) (delivery.DeliveryRecordResponse, error)
	listByDayFn          func(ctx context.Context, accountID, day string) ([]delivery.DeliveryRecordResponse, error)
}

func (f *fakeService) RecordDelivered(ctx context.Context, accountID string, req delivery.RecordDeliveredRequest) (delivery.DeliveryRecordResponse, error) {
	return f.recordDeliveredFn(ctx, accountID, req)
}
func (f *fakeService) RecordNotDelivered(ctx context.Context, accountID string, req delivery.RecordNotDeliveredRequest) (delivery.DeliveryRecordResponse, error) {
	return f.recordNotDeliveredFn(ctx, accountID, req)
}
func (f *fakeService) ListByDay(ctx context.Context, accountID, day string) ([]delivery.DeliveryRecordResponse, error) {
	return f.listByDayFn(ctx, accountID, day)
}

func TestHandler_RecordDeliveredAndListByDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accountID := uuid.New().String()
	clientID := uuid.New().String()

	svc := &fakeService{
		recordDeliveredFn: func(ctx context.Context, aid string, req delivery.RecordDeliveredRequest) (delivery.DeliveryRecordResponse, error) {
			assert.Equal(t, accountID, aid)
			assert.Equal(t, clientID, req.ClientID)
			assert.Equal(t, "PM", req.Shift)
			return delivery.DeliveryRecordResponse{ID: uuid.New().String(), ClientID: req.ClientID, Status: "Delivered"}, nil
		},
		listByDayFn: func(ctx context.Context, aid, day string) ([]delivery.DeliveryRecordResponse, error) {
			assert.Equal(t, "2026-01-10", day)
			return []delivery.DeliveryRecordResponse{{ID: uuid.New().String()}}, nil
		},
	}

	h := delivery.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", accountID)
	c.Request = httptest.NewRequest(http.MethodPost, "/deliveries/delivered",
		strings.NewReader(`{"client_id":"`+clientID+`","shift":"PM"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.RecordDelivered(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"Delivered\"")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id_validated", accountID)
	c2.Request = httptest.NewRequest(http.MethodGet, "/deliveries?date=2026-01-10", nil)
	h.ListByDay(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_RecordNotDelivered_BadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		recordNotDeliveredFn: func(ctx context.Context, aid string, req delivery.RecordNotDeliveredRequest) (delivery.DeliveryRecordResponse, error) {
			t.Fatal("service must not be hit when binding fails")
			return delivery.DeliveryRecordResponse{}, nil
		},
	}
	h := delivery.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/deliveries/not-delivered",
		strings.NewReader(`{"client_id":"not-a-uuid","shift":"AM","reason":"no answer"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.RecordNotDelivered(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_RecordDelivered_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		recordDeliveredFn: func(ctx context.Context, aid string, req delivery.RecordDeliveredRequest) (delivery.DeliveryRecordResponse, error) {
			return delivery.DeliveryRecordResponse{}, deliveryerrors.ErrClientNotAssigned
		},
	}
	h := delivery.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id_validated", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/deliveries/delivered",
		strings.NewReader(`{"client_id":"`+uuid.New().String()+`","shift":"AM"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.RecordDelivered(c)

	assert.Equal(t, deliveryerrors.ErrClientNotAssigned.HTTPStatus, w.Code)
	assert.Contains(t, w.Body.String(), deliveryerrors.ErrClientNotAssigned.Code)
}
