package assignment

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	assignmenterrors "milkroute/internal/assignment/errors"
	"milkroute/internal/client"
	"milkroute/internal/messaging/kafka"
	"milkroute/internal/shared/apperror"
	"milkroute/internal/staff"
	stafferrors "milkroute/internal/staff/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	insertFn        func(ctx context.Context, staffID, clientID string) error
	deleteRowFn     func(ctx context.Context, staffID, clientID string) (bool, error)
	existsFn        func(ctx context.Context, staffID, clientID string) (bool, error)
	listClientIDsFn func(ctx context.Context, staffID string) ([]string, error)
	countByStaffFn  func(ctx context.Context, staffID string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Insert(ctx context.Context, staffID, clientID string) error {
	return f.insertFn(ctx, staffID, clientID)
}
func (f *fakeRepo) DeleteRow(ctx context.Context, staffID, clientID string) (bool, error) {
	return f.deleteRowFn(ctx, staffID, clientID)
}
func (f *fakeRepo) Exists(ctx context.Context, staffID, clientID string) (bool, error) {
	return f.existsFn(ctx, staffID, clientID)
}
func (f *fakeRepo) ListClientIDs(ctx context.Context, staffID string) ([]string, error) {
	return f.listClientIDsFn(ctx, staffID)
}
func (f *fakeRepo) CountByStaff(ctx context.Context, staffID string) (int64, error) {
	return f.countByStaffFn(ctx, staffID)
}

type fakeStaffRepo struct {
	staff.Repository
	findByIDFn            func(ctx context.Context, id string) (*staff.StaffProfile, error)
	updateTotalQuantityFn func(ctx context.Context, staffID string, total float64) error
}

func (f *fakeStaffRepo) FindByID(ctx context.Context, id string) (*staff.StaffProfile, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeStaffRepo) UpdateTotalQuantity(ctx context.Context, staffID string, total float64) error {
	return f.updateTotalQuantityFn(ctx, staffID, total)
}

type fakeClientRepo struct {
	client.Repository
	findByIDFn         func(ctx context.Context, id string) (*client.Client, error)
	findByIDsFn        func(ctx context.Context, ids []string) ([]client.Client, error)
	setAssignedStaffFn func(ctx context.Context, clientID string, staffID *string) error
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id string) (*client.Client, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeClientRepo) FindByIDs(ctx context.Context, ids []string) ([]client.Client, error) {
	return f.findByIDsFn(ctx, ids)
}
func (f *fakeClientRepo) SetAssignedStaff(ctx context.Context, clientID string, staffID *string) error {
	return f.setAssignedStaffFn(ctx, clientID, staffID)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fixture struct {
	staffID    uuid.UUID
	clientID   uuid.UUID
	repo       *fakeRepo
	staffRepo  *fakeStaffRepo
	clientRepo *fakeClientRepo
	outbox     *fakeOutbox
	assigned   map[string]*string
}

func newFixture() *fixture {
	fx := &fixture{
		staffID:  uuid.New(),
		clientID: uuid.New(),
		assigned: map[string]*string{},
		outbox:   &fakeOutbox{},
	}

	var stored []string
	fx.repo = &fakeRepo{
		insertFn: func(ctx context.Context, staffID, clientID string) error {
			stored = append(stored, clientID)
			return nil
		},
		deleteRowFn: func(ctx context.Context, staffID, clientID string) (bool, error) {
			for i, id := range stored {
				if id == clientID {
					stored = append(stored[:i], stored[i+1:]...)
					return true, nil
				}
			}
			return false, nil
		},
		existsFn: func(ctx context.Context, staffID, clientID string) (bool, error) {
			for _, id := range stored {
				if id == clientID {
					return true, nil
				}
			}
			return false, nil
		},
		listClientIDsFn: func(ctx context.Context, staffID string) ([]string, error) {
			return append([]string(nil), stored...), nil
		},
		countByStaffFn: func(ctx context.Context, staffID string) (int64, error) {
			return int64(len(stored)), nil
		},
	}

	fx.staffRepo = &fakeStaffRepo{
		findByIDFn: func(ctx context.Context, id string) (*staff.StaffProfile, error) {
			return &staff.StaffProfile{ID: fx.staffID, FullName: "Meera"}, nil
		},
		updateTotalQuantityFn: func(ctx context.Context, staffID string, total float64) error {
			return nil
		},
	}

	fx.clientRepo = &fakeClientRepo{
		findByIDFn: func(ctx context.Context, id string) (*client.Client, error) {
			c := &client.Client{ID: fx.clientID, FullName: "Acme Dairy", Shift: "AM", Quantity: 5}
			if sid, ok := fx.assigned[id]; ok && sid != nil {
				parsed, _ := uuid.Parse(*sid)
				c.AssignedStaffID = &parsed
			}
			return c, nil
		},
		findByIDsFn: func(ctx context.Context, ids []string) ([]client.Client, error) {
			out := make([]client.Client, 0, len(ids))
			for range ids {
				out = append(out, client.Client{ID: fx.clientID, Shift: "AM", Quantity: 5})
			}
			return out, nil
		},
		setAssignedStaffFn: func(ctx context.Context, clientID string, staffID *string) error {
			fx.assigned[clientID] = staffID
			return nil
		},
	}

	return fx
}

func TestService_AssignUnassignRoundTrip(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Assign(ctx, AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.NoError(t, err)
	assert.Equal(t, []string{fx.clientID.String()}, resp.AssignedClients)
	assert.Equal(t, float64(5), resp.TotalQuantity)
	assert.NotNil(t, fx.assigned[fx.clientID.String()])

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Unassign(ctx, UnassignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.NoError(t, err)
	assert.Empty(t, resp.AssignedClients)
	assert.Nil(t, fx.assigned[fx.clientID.String()])

	// one assigned + one unassigned change event
	assert.Len(t, fx.outbox.created, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Assign_AlreadyAssigned(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Assign(ctx, AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.NoError(t, err)

	_, err = svc.Assign(ctx, AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.ErrorIs(t, err, assignmenterrors.ErrAlreadyAssigned)
}

func TestService_Assign_ClientHeldByOtherStaff(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	other := uuid.New().String()
	fx.assigned[fx.clientID.String()] = &other

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	_, err := svc.Assign(context.Background(), AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.ErrorIs(t, err, assignmenterrors.ErrAssignedToOtherStaff)
}

func TestService_Assign_StaffNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()
	fx.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.StaffProfile, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	_, err := svc.Assign(context.Background(), AssignRequest{StaffID: uuid.New().String(), ClientID: fx.clientID.String()})
	assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
}

func TestService_Assign_MirrorFailureIsPartial(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()
	fx.clientRepo.setAssignedStaffFn = func(ctx context.Context, clientID string, staffID *string) error {
		return errors.New("mirror write refused")
	}

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Assign(context.Background(), AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodePartialFailure, appErr.Code)

	detail, ok := appErr.Details.(apperror.PartialFailureDetail)
	assert.True(t, ok)
	assert.Contains(t, detail.Completed, fx.staffID.String())
	assert.Contains(t, detail.Failed, fx.clientID.String())
}

func TestService_Unassign_NotAssigned(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Unassign(context.Background(), UnassignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.ErrorIs(t, err, assignmenterrors.ErrNotAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ReconcileByShift_DropsMismatched(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Assign(ctx, AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.NoError(t, err)

	// the assigned client is an AM client; reconciling to PM drops it
	resp, err := svc.ReconcileByShift(ctx, ReconcileRequest{StaffID: fx.staffID.String(), Shift: "PM"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.DroppedCount)
	assert.Equal(t, int64(0), resp.RemainingCount)
	assert.Nil(t, fx.assigned[fx.clientID.String()])
}

func TestService_ReconcileByShift_KeepsMatching(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	fx := newFixture()

	svc := NewService(db, fx.repo, fx.staffRepo, fx.clientRepo, fx.outbox)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Assign(ctx, AssignRequest{StaffID: fx.staffID.String(), ClientID: fx.clientID.String()})
	assert.NoError(t, err)

	resp, err := svc.ReconcileByShift(ctx, ReconcileRequest{StaffID: fx.staffID.String(), Shift: "AM"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.DroppedCount)
	assert.Equal(t, int64(1), resp.RemainingCount)
}
