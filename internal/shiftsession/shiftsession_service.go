package shiftsession

import (
	"context"
	"errors"
	"slices"

	"milkroute/internal/client"
	"milkroute/internal/settings"
	"milkroute/internal/shared/contextutil"
	"milkroute/internal/shared/dateutil"
	shiftsessionerrors "milkroute/internal/shiftsession/errors"
	"milkroute/internal/staff"
	stafferrors "milkroute/internal/staff/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignmentLister mirrors the ledger's read side; the session's shift gates
// which of the staff member's assigned clients are in play for the day.
type AssignmentLister interface {
	ListClientIDs(ctx context.Context, staffID string) ([]string, error)
}

//go:generate mockgen -source=shiftsession_service.go -destination=mock/shiftsession_service_mock.go -package=mock
type Service interface {
	SelectShift(ctx context.Context, accountID string, req SelectShiftRequest) (SessionResponse, error)
	GetSession(ctx context.Context, accountID, day string) (SessionResponse, error)
	ListClients(ctx context.Context, accountID string) ([]SessionClient, error)
}

type service struct {
	repo        Repository
	staffRepo   staff.Repository
	assignments AssignmentLister
	clientRepo  client.Repository
	settings    settings.Provider
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	staffRepo staff.Repository,
	assignments AssignmentLister,
	clientRepo client.Repository,
	settingsProvider settings.Provider,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("shiftsession.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shiftsession.service")
	}
	return &service{
		repo:        repo,
		staffRepo:   staffRepo,
		assignments: assignments,
		clientRepo:  clientRepo,
		settings:    settingsProvider,
		logger:      l,
	}
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

// SelectShift upserts the (staff, today) session; whichever write is last
// today wins, so callers relying on shift-gated client lists must re-query
// after any selection.
func (s *service) SelectShift(ctx context.Context, accountID string, req SelectShiftRequest) (SessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	profile, err := s.resolveStaff(ctx, accountID)
	if err != nil {
		return SessionResponse{}, err
	}

	shifts, err := s.settings.Shifts(ctx)
	if err != nil {
		return SessionResponse{}, err
	}
	if !slices.Contains(shifts, req.Shift) {
		return SessionResponse{}, shiftsessionerrors.ErrInvalidShift
	}

	staffID := profile.ID.String()
	today := dateutil.Today()
	if err := s.repo.Upsert(ctx, staffID, today, req.Shift); err != nil {
		s.logger.Error("shift session upsert failed",
			zap.String("request_id", rid),
			zap.String("staff_id", staffID),
			zap.Error(err),
		)
		return SessionResponse{}, err
	}

	row, err := s.repo.FindByStaffAndDate(ctx, staffID, today)
	if err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("shift selected",
		zap.String("request_id", rid),
		zap.String("staff_id", staffID),
		zap.String("shift", req.Shift),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetSession(ctx context.Context, accountID, day string) (SessionResponse, error) {
	profile, err := s.resolveStaff(ctx, accountID)
	if err != nil {
		return SessionResponse{}, err
	}

	date, err := dateutil.ParseDay(day)
	if err != nil {
		return SessionResponse{}, shiftsessionerrors.ErrInvalidDate
	}

	row, err := s.repo.FindByStaffAndDate(ctx, profile.ID.String(), date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, shiftsessionerrors.ErrNoSessionForDate
		}
		return SessionResponse{}, err
	}
	return mapToResponse(*row), nil
}

// ListClients returns the staff member's assigned clients filtered by
// today's selected shift.
func (s *service) ListClients(ctx context.Context, accountID string) ([]SessionClient, error) {
	profile, err := s.resolveStaff(ctx, accountID)
	if err != nil {
		return nil, err
	}
	staffID := profile.ID.String()

	session, err := s.repo.FindByStaffAndDate(ctx, staffID, dateutil.Today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shiftsessionerrors.ErrNoSessionForDate
		}
		return nil, err
	}

	ids, err := s.assignments.ListClientIDs(ctx, staffID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]SessionClient, 0, len(clients))
	for _, c := range clients {
		if c.Shift != session.Shift {
			continue
		}
		res = append(res, SessionClient{
			ID:             c.ID.String(),
			ClientNumber:   c.ClientNumber,
			FullName:       c.FullName,
			Address:        c.Address,
			Shift:          c.Shift,
			Quantity:       c.Quantity,
			UnitPrice:      c.UnitPrice,
			DeliveryStatus: c.DeliveryStatus,
		})
	}
	return res, nil
}

func mapToResponse(s ShiftSession) SessionResponse {
	return SessionResponse{
		ID:          s.ID.String(),
		StaffID:     s.StaffID.String(),
		SessionDate: s.SessionDate.Format(dateutil.DayFormat),
		Shift:       s.Shift,
	}
}
