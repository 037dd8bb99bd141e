package assignment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	assignmenterrors "milkroute/internal/assignment/errors"
	"milkroute/internal/client"
	clienterrors "milkroute/internal/client/errors"
	"milkroute/internal/events"
	"milkroute/internal/messaging/kafka"
	"milkroute/internal/shared/apperror"
	"milkroute/internal/shared/contextutil"
	"milkroute/internal/staff"
	stafferrors "milkroute/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, req AssignRequest) (AssignmentResponse, error)
	Unassign(ctx context.Context, req UnassignRequest) (AssignmentResponse, error)
	ReconcileByShift(ctx context.Context, req ReconcileRequest) (ReconcileResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	staffRepo  staff.Repository
	clientRepo client.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	clientRepo client.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		staffRepo:  staffRepo,
		clientRepo: clientRepo,
		outbox:     outboxRepo,
		logger:     l,
	}
}

func (s *service) Assign(ctx context.Context, req AssignRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	staffRow, err := s.staffRepo.FindByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, stafferrors.ErrStaffNotFound
		}
		return AssignmentResponse{}, err
	}

	clientRow, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, clienterrors.ErrClientNotFound
		}
		return AssignmentResponse{}, err
	}

	exists, err := s.repo.Exists(ctx, req.StaffID, req.ClientID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if exists {
		return AssignmentResponse{}, assignmenterrors.ErrAlreadyAssigned
	}
	if clientRow.AssignedStaffID != nil && clientRow.AssignedStaffID.String() != req.StaffID {
		return AssignmentResponse{}, assignmenterrors.ErrAssignedToOtherStaff
	}

	// First side: the assignment row, with the change event in the same tx.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Insert(ctx, req.StaffID, req.ClientID); err != nil {
		s.logger.Error("insert assignment row failed",
			zap.String("request_id", rid),
			zap.String("staff_id", req.StaffID),
			zap.String("client_id", req.ClientID),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}
	if err := s.enqueueChangeEvent(ctx, tx, events.AssignmentActionAssigned, req.StaffID, req.ClientID); err != nil {
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	// Second side: the client's back-reference. Failure here leaves the
	// ledger inconsistent and must be reported as such, never as success.
	if err := s.clientRepo.SetAssignedStaff(ctx, req.ClientID, &req.StaffID); err != nil {
		s.logger.Error("assignment back-reference write failed",
			zap.String("request_id", rid),
			zap.String("staff_id", req.StaffID),
			zap.String("client_id", req.ClientID),
			zap.Error(err),
		)
		return AssignmentResponse{}, apperror.PartialFailure(
			"assignment row created for staff "+req.StaffID,
			"client back-reference for client "+req.ClientID,
			err,
		)
	}

	s.logger.Info("client assigned",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.String("client_id", req.ClientID),
	)
	return s.buildResponse(ctx, staffRow)
}

func (s *service) Unassign(ctx context.Context, req UnassignRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	staffRow, err := s.staffRepo.FindByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, stafferrors.ErrStaffNotFound
		}
		return AssignmentResponse{}, err
	}

	clientRow, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, clienterrors.ErrClientNotFound
		}
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	removed, err := qtx.DeleteRow(ctx, req.StaffID, req.ClientID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !removed {
		return AssignmentResponse{}, assignmenterrors.ErrNotAssigned
	}
	if err := s.enqueueChangeEvent(ctx, tx, events.AssignmentActionUnassigned, req.StaffID, req.ClientID); err != nil {
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	// Clear the back-reference only when it still points at this staff.
	if clientRow.AssignedStaffID != nil && clientRow.AssignedStaffID.String() == req.StaffID {
		if err := s.clientRepo.SetAssignedStaff(ctx, req.ClientID, nil); err != nil {
			s.logger.Error("unassign back-reference clear failed",
				zap.String("request_id", rid),
				zap.String("staff_id", req.StaffID),
				zap.String("client_id", req.ClientID),
				zap.Error(err),
			)
			return AssignmentResponse{}, apperror.PartialFailure(
				"assignment row removed for staff "+req.StaffID,
				"client back-reference clear for client "+req.ClientID,
				err,
			)
		}
	}

	s.logger.Info("client unassigned",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.String("client_id", req.ClientID),
	)
	return s.buildResponse(ctx, staffRow)
}

// ReconcileByShift drops assignments whose client's shift designation does
// not match the given shift. Dropped clients lose no data; they simply stop
// appearing for this staff/shift combination.
func (s *service) ReconcileByShift(ctx context.Context, req ReconcileRequest) (ReconcileResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.staffRepo.FindByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReconcileResponse{}, stafferrors.ErrStaffNotFound
		}
		return ReconcileResponse{}, err
	}

	ids, err := s.repo.ListClientIDs(ctx, req.StaffID)
	if err != nil {
		return ReconcileResponse{}, err
	}
	clients, err := s.clientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return ReconcileResponse{}, err
	}

	var dropped int64
	for _, c := range clients {
		if c.Shift == req.Shift {
			continue
		}
		removed, err := s.repo.DeleteRow(ctx, req.StaffID, c.ID.String())
		if err != nil {
			return ReconcileResponse{}, err
		}
		if !removed {
			continue
		}
		if err := s.clientRepo.SetAssignedStaff(ctx, c.ID.String(), nil); err != nil {
			return ReconcileResponse{}, apperror.PartialFailure(
				"assignment row removed for client "+c.ID.String(),
				"client back-reference clear for client "+c.ID.String(),
				err,
			)
		}
		dropped++
	}

	if err := s.refreshTotals(ctx, req.StaffID); err != nil {
		s.logger.Warn("refresh staff totals failed",
			zap.String("request_id", rid),
			zap.String("staff_id", req.StaffID),
			zap.Error(err),
		)
	}

	remaining, err := s.repo.CountByStaff(ctx, req.StaffID)
	if err != nil {
		return ReconcileResponse{}, err
	}

	s.logger.Info("assignments reconciled by shift",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.String("shift", req.Shift),
		zap.Int64("dropped", dropped),
		zap.Int64("remaining", remaining),
	)
	return ReconcileResponse{
		StaffID:        req.StaffID,
		Shift:          req.Shift,
		RemainingCount: remaining,
		DroppedCount:   dropped,
	}, nil
}

func (s *service) enqueueChangeEvent(ctx context.Context, tx *sql.Tx, action, staffID, clientID string) error {
	if s.outbox == nil {
		return nil
	}
	payload, err := json.Marshal(events.AssignmentChangedEvent{
		EventType:  "assignment.changed",
		Action:     action,
		StaffID:    staffID,
		ClientID:   clientID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "assignment",
		AggregateID:   clientID,
		EventType:     "assignment.changed",
		Topic:         events.AssignmentChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) buildResponse(ctx context.Context, staffRow *staff.StaffProfile) (AssignmentResponse, error) {
	ids, err := s.repo.ListClientIDs(ctx, staffRow.ID.String())
	if err != nil {
		return AssignmentResponse{}, err
	}

	total, err := s.refreshTotalsFor(ctx, staffRow.ID.String(), ids)
	if err != nil {
		s.logger.Warn("refresh staff totals failed",
			zap.String("staff_id", staffRow.ID.String()),
			zap.Error(err),
		)
	}

	return AssignmentResponse{
		StaffID:         staffRow.ID.String(),
		StaffName:       staffRow.FullName,
		AssignedClients: ids,
		TotalQuantity:   total,
	}, nil
}

func (s *service) refreshTotals(ctx context.Context, staffID string) error {
	ids, err := s.repo.ListClientIDs(ctx, staffID)
	if err != nil {
		return err
	}
	_, err = s.refreshTotalsFor(ctx, staffID, ids)
	return err
}

func (s *service) refreshTotalsFor(ctx context.Context, staffID string, clientIDs []string) (float64, error) {
	clients, err := s.clientRepo.FindByIDs(ctx, clientIDs)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, c := range clients {
		total += c.Quantity
	}
	return total, s.staffRepo.UpdateTotalQuantity(ctx, staffID, total)
}
