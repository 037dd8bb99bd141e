package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"milkroute/internal/settings"
	"milkroute/internal/shared/contextutil"
	stafferrors "milkroute/internal/staff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const roleStaff = "staff"

// AssignmentLister exposes just the part of the assignment ledger the
// directory needs to render a profile's client set.
type AssignmentLister interface {
	ListClientIDs(ctx context.Context, staffID string) ([]string, error)
}

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	ResolveForAccount(ctx context.Context, accountID string) (StaffResponse, error)
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context) ([]StaffResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	assignments AssignmentLister
	settings    settings.Provider
	logger      *zap.Logger
}

func NewService(repo Repository, assignments AssignmentLister, settingsProvider settings.Provider, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		repo:        repo,
		assignments: assignments,
		settings:    settingsProvider,
		logger:      l,
	}
}

// ResolveForAccount maps an authenticated account to its staff profile,
// creating one on first lookup. Repeated calls return the same profile.
func (s *service) ResolveForAccount(ctx context.Context, accountID string) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(accountID); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}

	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, stafferrors.ErrAccountNotFound
		}
		return StaffResponse{}, err
	}
	if !strings.EqualFold(account.Role, roleStaff) {
		return StaffResponse{}, stafferrors.ErrNotStaffRole
	}

	profile, err := s.repo.FindByUserID(ctx, accountID)
	if err == nil {
		// Display fields follow the account record.
		if account.Name != "" && profile.FullName != account.Name {
			profile.FullName = account.Name
		}
		return s.mapWithAssignments(ctx, *profile), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StaffResponse{}, err
	}

	defaultShift, err := s.settings.DefaultShift(ctx)
	if err != nil {
		return StaffResponse{}, err
	}

	row := &StaffProfile{
		ID:            uuid.New(),
		UserID:        account.ID,
		FullName:      account.Name,
		Shift:         defaultShift,
		IsAvailable:   true,
		TotalQuantity: 0,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		// Lost a provisioning race; the winner's row is the profile.
		if isUniqueViolation(err, "uq_staff_user") {
			existing, findErr := s.repo.FindByUserID(ctx, accountID)
			if findErr != nil {
				return StaffResponse{}, findErr
			}
			return s.mapWithAssignments(ctx, *existing), nil
		}
		return StaffResponse{}, err
	}

	s.logger.Info("staff profile auto-provisioned",
		zap.String("request_id", rid),
		zap.String("staff_id", row.ID.String()),
		zap.String("user_id", accountID),
	)
	return s.mapWithAssignments(ctx, *row), nil
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	account, err := s.repo.FindAccountByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, stafferrors.ErrAccountNotFound
		}
		return StaffResponse{}, err
	}

	shift := req.Shift
	if shift == "" {
		shift, err = s.settings.DefaultShift(ctx)
		if err != nil {
			return StaffResponse{}, err
		}
	}

	row := &StaffProfile{
		ID:          uuid.New(),
		UserID:      account.ID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Location:    req.Location,
		Shift:       shift,
		IsAvailable: true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("staff profile created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", row.ID.String()),
	)
	return s.mapWithAssignments(ctx, *row), nil
}

func (s *service) GetAll(ctx context.Context) ([]StaffResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]StaffResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapWithAssignments(ctx, r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return s.mapWithAssignments(ctx, *row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	if req.FullName != nil {
		row.FullName = *req.FullName
	}
	if req.Phone != nil {
		row.Phone = *req.Phone
	}
	if req.Location != nil {
		row.Location = *req.Location
	}
	if req.Shift != nil {
		row.Shift = *req.Shift
	}
	if req.IsAvailable != nil {
		row.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return s.mapWithAssignments(ctx, *row), nil
}

// Delete removes the profile only. Delivery records keep their staff
// reference; read paths render those as "Unknown Staff".
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return stafferrors.ErrInvalidStaffID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("staff profile deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", id),
	)
	return nil
}

func (s *service) mapWithAssignments(ctx context.Context, p StaffProfile) StaffResponse {
	resp := mapToResponse(p)
	if s.assignments != nil {
		if ids, err := s.assignments.ListClientIDs(ctx, p.ID.String()); err == nil {
			resp.AssignedClients = ids
		} else {
			s.logger.Warn("list assigned clients failed",
				zap.String("staff_id", p.ID.String()),
				zap.Error(err),
			)
		}
	}
	return resp
}

func mapToResponse(p StaffProfile) StaffResponse {
	resp := StaffResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		FullName:        p.FullName,
		Phone:           p.Phone,
		Location:        p.Location,
		Shift:           p.Shift,
		IsAvailable:     p.IsAvailable,
		TotalQuantity:   p.TotalQuantity,
		AssignedClients: []string{},
	}
	if p.LastDeliveryAt != nil {
		v := p.LastDeliveryAt.UTC().Format(time.RFC3339)
		resp.LastDeliveryAt = &v
	}
	return resp
}
