package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"milkroute/internal/client"
	clienterrors "milkroute/internal/client/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn     func(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error)
	getAllFn     func(ctx context.Context) ([]client.ClientResponse, error)
	getByIDFn    func(ctx context.Context, id string) (client.ClientResponse, error)
	updateFn     func(ctx context.Context, id string, req client.UpdateClientRequest) (client.ClientResponse, error)
	deleteFn     func(ctx context.Context, id string) error
	getHistoryFn func(ctx context.Context, id string) ([]client.HistoryEntryResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]client.ClientResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (client.ClientResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) Update(ctx context.Context, id string, req client.UpdateClientRequest) (client.ClientResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeService) GetHistory(ctx context.Context, id string) ([]client.HistoryEntryResponse, error) {
	return f.getHistoryFn(ctx, id)
}

func TestHandler_CreateAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
			assert.Equal(t, "Maria Santos", req.FullName)
			assert.Equal(t, 2.0, req.Quantity)
			return client.ClientResponse{ID: uuid.New().String(), ClientNumber: "CL-0001", FullName: req.FullName}, nil
		},
		getAllFn: func(ctx context.Context) ([]client.ClientResponse, error) {
			out := make([]client.ClientResponse, 0, 5)
			for i := 0; i < 5; i++ {
				out = append(out, client.ClientResponse{ID: uuid.New().String(), ClientNumber: fmt.Sprintf("CL-%04d", i+1)})
			}
			return out, nil
		},
	}

	h := client.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"full_name":"Maria Santos","shift":"AM","quantity":2,"unit_price":3.5}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "CL-0001")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/clients?page=2&page_size=2", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
	assert.Contains(t, w2.Body.String(), "CL-0003")
	assert.NotContains(t, w2.Body.String(), "CL-0002")
}

func TestHandler_Create_MissingQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
			t.Fatal("service must not be hit when binding fails")
			return client.ClientResponse{}, nil
		},
	}
	h := client.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"full_name":"Maria Santos","shift":"AM"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id string) (client.ClientResponse, error) {
			return client.ClientResponse{}, clienterrors.ErrClientNotFound
		},
	}
	h := client.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/clients/x", nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), clienterrors.ErrClientNotFound.Code)
}
