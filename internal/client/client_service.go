package client

import (
	"context"
	"fmt"
	"slices"

	clienterrors "milkroute/internal/client/errors"
	"milkroute/internal/settings"
	"milkroute/internal/shared/contextutil"
	"milkroute/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
	GetHistory(ctx context.Context, id string) ([]HistoryEntryResponse, error)
}

// Unassigner detaches a client from the staff that holds it. Deleting a
// client must go through the same dual-entity path as a manual unassign so
// the staff's set and totals stay consistent.
type Unassigner interface {
	RemoveClient(ctx context.Context, staffID, clientID string) error
}

// UnassignerFunc adapts a function to the Unassigner interface.
type UnassignerFunc func(ctx context.Context, staffID, clientID string) error

func (f UnassignerFunc) RemoveClient(ctx context.Context, staffID, clientID string) error {
	return f(ctx, staffID, clientID)
}

type service struct {
	repo       Repository
	counter    counter.Repository
	settings   settings.Provider
	unassigner Unassigner
	logger     *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, settingsProvider settings.Provider, unassigner Unassigner, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{
		repo:       repo,
		counter:    counterRepo,
		settings:   settingsProvider,
		unassigner: unassigner,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := s.validateShift(ctx, req.Shift); err != nil {
		return ClientResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "client_number")
	if err != nil {
		s.logger.Error("generate client number failed", zap.String("request_id", rid), zap.Error(err))
		return ClientResponse{}, err
	}

	row := &Client{
		ID:             uuid.New(),
		ClientNumber:   fmt.Sprintf("CL-%04d", nextVal),
		FullName:       req.FullName,
		Address:        req.Address,
		Phone:          req.Phone,
		Shift:          req.Shift,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		DeliveryStatus: StatusPending,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create client failed", zap.String("request_id", rid), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("client created",
		zap.String("request_id", rid),
		zap.String("client_id", row.ID.String()),
		zap.String("client_number", row.ClientNumber),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClientResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]ClientResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}

	if req.Shift != nil {
		if err := s.validateShift(ctx, *req.Shift); err != nil {
			return ClientResponse{}, err
		}
		row.Shift = *req.Shift
	}
	if req.FullName != nil {
		row.FullName = *req.FullName
	}
	if req.Address != nil {
		row.Address = *req.Address
	}
	if req.Phone != nil {
		row.Phone = *req.Phone
	}
	if req.Quantity != nil {
		row.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		row.UnitPrice = *req.UnitPrice
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return ClientResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return clienterrors.ErrInvalidClientID
	}
	cl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if cl.AssignedStaffID != nil && s.unassigner != nil {
		if err := s.unassigner.RemoveClient(ctx, cl.AssignedStaffID.String(), id); err != nil {
			s.logger.Error("detach client before delete failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.String("client_id", id),
				zap.Error(err),
			)
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("client deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("client_id", id),
	)
	return nil
}

func (s *service) GetHistory(ctx context.Context, id string) ([]HistoryEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, clienterrors.ErrInvalidClientID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	rows, err := s.repo.FindHistory(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]HistoryEntryResponse, len(rows))
	for i, r := range rows {
		res[i] = HistoryEntryResponse{
			ID:       r.ID.String(),
			Date:     r.EntryDate.Format("2006-01-02"),
			Status:   r.Status,
			Quantity: r.Quantity,
			Reason:   r.Reason,
		}
	}
	return res, nil
}

func (s *service) validateShift(ctx context.Context, shift string) error {
	shifts, err := s.settings.Shifts(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(shifts, shift) {
		return clienterrors.ErrInvalidShift
	}
	return nil
}

func mapToResponse(c Client) ClientResponse {
	resp := ClientResponse{
		ID:             c.ID.String(),
		ClientNumber:   c.ClientNumber,
		FullName:       c.FullName,
		Address:        c.Address,
		Phone:          c.Phone,
		Shift:          c.Shift,
		Quantity:       c.Quantity,
		UnitPrice:      c.UnitPrice,
		DeliveryStatus: c.DeliveryStatus,
		DeliveryNotes:  c.DeliveryNotes,
	}
	if c.AssignedStaffID != nil {
		v := c.AssignedStaffID.String()
		resp.AssignedStaffID = &v
	}
	return resp
}
