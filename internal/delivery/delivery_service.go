package delivery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"milkroute/internal/client"
	clienterrors "milkroute/internal/client/errors"
	deliveryerrors "milkroute/internal/delivery/errors"
	"milkroute/internal/events"
	"milkroute/internal/messaging/kafka"
	"milkroute/internal/settings"
	"milkroute/internal/shared/apperror"
	"milkroute/internal/shared/contextutil"
	"milkroute/internal/shared/dateutil"
	"milkroute/internal/staff"
	stafferrors "milkroute/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignmentChecker is the slice of the ledger the recorder needs: whether
// the acting staff member currently holds the client.
type AssignmentChecker interface {
	Exists(ctx context.Context, staffID, clientID string) (bool, error)
}

//go:generate mockgen -source=delivery_service.go -destination=mock/delivery_service_mock.go -package=mock
type Service interface {
	RecordDelivered(ctx context.Context, accountID string, req RecordDeliveredRequest) (DeliveryRecordResponse, error)
	RecordNotDelivered(ctx context.Context, accountID string, req RecordNotDeliveredRequest) (DeliveryRecordResponse, error)
	ListByDay(ctx context.Context, accountID, day string) ([]DeliveryRecordResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	staffRepo   staff.Repository
	clientRepo  client.Repository
	assignments AssignmentChecker
	outbox      kafka.OutboxRepository
	settings    settings.Provider
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	clientRepo client.Repository,
	assignments AssignmentChecker,
	outboxRepo kafka.OutboxRepository,
	settingsProvider settings.Provider,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("delivery.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		staffRepo:   staffRepo,
		clientRepo:  clientRepo,
		assignments: assignments,
		outbox:      outboxRepo,
		settings:    settingsProvider,
		logger:      l,
	}
}

func (s *service) RecordDelivered(ctx context.Context, accountID string, req RecordDeliveredRequest) (DeliveryRecordResponse, error) {
	staffRow, clientRow, date, err := s.resolveWrite(ctx, accountID, req.ClientID, req.Shift, req.Date)
	if err != nil {
		return DeliveryRecordResponse{}, err
	}

	quantity := clientRow.Quantity
	price := quantity * clientRow.UnitPrice

	rec := &DeliveryRecord{
		ID:           uuid.New(),
		ClientID:     clientRow.ID,
		StaffID:      staffRow.ID,
		DeliveryDate: date,
		Shift:        req.Shift,
		Status:       StatusDelivered,
		Quantity:     quantity,
		Price:        price,
	}

	if err := s.writeRecord(ctx, rec); err != nil {
		return DeliveryRecordResponse{}, err
	}

	// Mirror onto the client: status plus an unconditional history append.
	// The record is keyed and updated in place; the history log is not.
	if err := s.clientRepo.UpdateDeliveryState(ctx, clientRow.ID.String(), client.StatusDelivered, nil); err != nil {
		return DeliveryRecordResponse{}, s.mirrorFailure(ctx, rec, "client delivery-status mirror", err)
	}
	if err := s.clientRepo.AppendHistory(ctx, &client.HistoryEntry{
		ID:        uuid.New(),
		ClientID:  clientRow.ID,
		EntryDate: date,
		Status:    client.StatusDelivered,
		Quantity:  quantity,
	}); err != nil {
		return DeliveryRecordResponse{}, s.mirrorFailure(ctx, rec, "client history append", err)
	}

	if err := s.staffRepo.TouchLastDelivery(ctx, staffRow.ID.String(), time.Now().UTC()); err != nil {
		s.logger.Warn("touch last delivery failed",
			zap.String("staff_id", staffRow.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("delivery recorded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("record_id", rec.ID.String()),
		zap.String("client_id", rec.ClientID.String()),
		zap.String("status", rec.Status),
		zap.Float64("quantity", quantity),
	)
	return mapToResponse(*rec, clientRow.FullName), nil
}

func (s *service) RecordNotDelivered(ctx context.Context, accountID string, req RecordNotDeliveredRequest) (DeliveryRecordResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return DeliveryRecordResponse{}, deliveryerrors.ErrReasonRequired
	}

	staffRow, clientRow, date, err := s.resolveWrite(ctx, accountID, req.ClientID, req.Shift, req.Date)
	if err != nil {
		return DeliveryRecordResponse{}, err
	}

	reason := req.Reason
	rec := &DeliveryRecord{
		ID:           uuid.New(),
		ClientID:     clientRow.ID,
		StaffID:      staffRow.ID,
		DeliveryDate: date,
		Shift:        req.Shift,
		Status:       StatusNotDelivered,
		Quantity:     0,
		Price:        0,
		Note:         &reason,
	}

	if err := s.writeRecord(ctx, rec); err != nil {
		return DeliveryRecordResponse{}, err
	}

	if err := s.clientRepo.UpdateDeliveryState(ctx, clientRow.ID.String(), client.StatusNotDelivered, &reason); err != nil {
		return DeliveryRecordResponse{}, s.mirrorFailure(ctx, rec, "client delivery-status mirror", err)
	}
	if err := s.clientRepo.AppendHistory(ctx, &client.HistoryEntry{
		ID:        uuid.New(),
		ClientID:  clientRow.ID,
		EntryDate: date,
		Status:    client.StatusNotDelivered,
		Quantity:  0,
		Reason:    &reason,
	}); err != nil {
		return DeliveryRecordResponse{}, s.mirrorFailure(ctx, rec, "client history append", err)
	}

	s.logger.Info("non-delivery recorded",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("record_id", rec.ID.String()),
		zap.String("client_id", rec.ClientID.String()),
		zap.String("reason", reason),
	)
	return mapToResponse(*rec, clientRow.FullName), nil
}

func (s *service) ListByDay(ctx context.Context, accountID, day string) ([]DeliveryRecordResponse, error) {
	staffRow, err := s.resolveStaff(ctx, accountID)
	if err != nil {
		return nil, err
	}
	date, err := dateutil.ParseDay(day)
	if err != nil {
		return nil, deliveryerrors.ErrInvalidDate
	}

	rows, err := s.repo.ListByStaffAndDate(ctx, staffRow.ID.String(), date)
	if err != nil {
		return nil, err
	}

	res := make([]DeliveryRecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r.DeliveryRecord, r.ClientName)
	}
	return res, nil
}

// resolveWrite validates the common preconditions of both record paths:
// acting staff, target client, assignment, shift, and day.
func (s *service) resolveWrite(
	ctx context.Context,
	accountID, clientID, shift, day string,
) (*staff.StaffProfile, *client.Client, time.Time, error) {
	staffRow, err := s.resolveStaff(ctx, accountID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	clientRow, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, time.Time{}, clienterrors.ErrClientNotFound
		}
		return nil, nil, time.Time{}, err
	}

	assigned, err := s.assignments.Exists(ctx, staffRow.ID.String(), clientID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	if !assigned {
		return nil, nil, time.Time{}, deliveryerrors.ErrClientNotAssigned
	}

	shifts, err := s.settings.Shifts(ctx)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	if !slices.Contains(shifts, shift) {
		return nil, nil, time.Time{}, deliveryerrors.ErrInvalidShift
	}

	date, err := dateutil.ParseDay(day)
	if err != nil {
		return nil, nil, time.Time{}, deliveryerrors.ErrInvalidDate
	}

	return staffRow, clientRow, date, nil
}

func (s *service) resolveStaff(ctx context.Context, accountID string) (*staff.StaffProfile, error) {
	row, err := s.staffRepo.FindByUserID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stafferrors.ErrStaffNotFound
		}
		return nil, err
	}
	return row, nil
}

// writeRecord upserts the delivery record and enqueues the recorded event in
// one transaction. The unique key makes concurrent writers converge on a
// single row.
func (s *service) writeRecord(ctx context.Context, rec *DeliveryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, rec); err != nil {
		s.logger.Error("delivery record upsert failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("client_id", rec.ClientID.String()),
			zap.Error(err),
		)
		return err
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.DeliveryRecordedEvent{
			EventType:    "delivery.recorded",
			RecordID:     rec.ID.String(),
			ClientID:     rec.ClientID.String(),
			StaffID:      rec.StaffID.String(),
			DeliveryDate: rec.DeliveryDate.Format(dateutil.DayFormat),
			Shift:        rec.Shift,
			Status:       rec.Status,
			Quantity:     rec.Quantity,
			Price:        rec.Price,
			OccurredAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "delivery_record",
			AggregateID:   rec.ID.String(),
			EventType:     "delivery.recorded",
			Topic:         events.DeliveryRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// mirrorFailure reports a committed record whose client mirror did not land.
// The record side is authoritative and stays; the caller must see the
// inconsistency, not a success.
func (s *service) mirrorFailure(ctx context.Context, rec *DeliveryRecord, failedSide string, err error) error {
	s.logger.Error("delivery mirror write failed",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("record_id", rec.ID.String()),
		zap.String("failed_side", failedSide),
		zap.Error(err),
	)
	return apperror.PartialFailure(
		"delivery record "+rec.ID.String(),
		failedSide+" for client "+rec.ClientID.String(),
		err,
	)
}

func mapToResponse(rec DeliveryRecord, clientName string) DeliveryRecordResponse {
	return DeliveryRecordResponse{
		ID:           rec.ID.String(),
		ClientID:     rec.ClientID.String(),
		ClientName:   clientName,
		StaffID:      rec.StaffID.String(),
		DeliveryDate: rec.DeliveryDate.Format(dateutil.DayFormat),
		Shift:        rec.Shift,
		Status:       rec.Status,
		Quantity:     rec.Quantity,
		Price:        rec.Price,
		Note:         rec.Note,
	}
}
