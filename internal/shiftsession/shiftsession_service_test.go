package shiftsession

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"milkroute/internal/client"
	"milkroute/internal/shared/dateutil"
	shiftsessionerrors "milkroute/internal/shiftsession/errors"
	"milkroute/internal/staff"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	sessions map[string]ShiftSession
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[string]ShiftSession{}}
}

func sessionKey(staffID string, date time.Time) string {
	return staffID + "|" + date.Format(dateutil.DayFormat)
}

func (f *fakeRepo) Upsert(ctx context.Context, staffID string, date time.Time, shift string) error {
	key := sessionKey(staffID, date)
	existing, ok := f.sessions[key]
	if !ok {
		parsed, _ := uuid.Parse(staffID)
		existing = ShiftSession{ID: uuid.New(), StaffID: parsed, SessionDate: date}
	}
	existing.Shift = shift
	f.sessions[key] = existing
	return nil
}

func (f *fakeRepo) FindByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*ShiftSession, error) {
	if row, ok := f.sessions[sessionKey(staffID, date)]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeStaffRepo struct {
	staff.Repository
	profile *staff.StaffProfile
}

func (f *fakeStaffRepo) FindByUserID(ctx context.Context, userID string) (*staff.StaffProfile, error) {
	if f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

type fakeLister struct{ ids []string }

func (f *fakeLister) ListClientIDs(ctx context.Context, staffID string) ([]string, error) {
	return f.ids, nil
}

type fakeClientRepo struct {
	client.Repository
	clients []client.Client
}

func (f *fakeClientRepo) FindByIDs(ctx context.Context, ids []string) ([]client.Client, error) {
	return f.clients, nil
}

type fakeSettings struct{}

func (fakeSettings) Get(ctx context.Context, name string) (json.RawMessage, error) { return nil, nil }
func (fakeSettings) Shifts(ctx context.Context) ([]string, error)                  { return []string{"AM", "PM"}, nil }
func (fakeSettings) Roles(ctx context.Context) ([]string, error)                   { return []string{"admin", "staff"}, nil }
func (fakeSettings) DeliveryStatuses(ctx context.Context) ([]string, error) {
	return []string{"Delivered", "Not Delivered"}, nil
}
func (fakeSettings) DefaultShift(ctx context.Context) (string, error) { return "AM", nil }
func (fakeSettings) DefaultRole(ctx context.Context) (string, error)  { return "staff", nil }

func newSessionService(repo *fakeRepo, staffRepo *fakeStaffRepo, lister *fakeLister, clients *fakeClientRepo) Service {
	return NewService(repo, staffRepo, lister, clients, fakeSettings{})
}

func TestService_SelectShift_UpsertStaysOneRow(t *testing.T) {
	staffID := uuid.New()
	repo := newFakeRepo()
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: staffID}}
	svc := newSessionService(repo, staffRepo, &fakeLister{}, &fakeClientRepo{})
	ctx := context.Background()
	accountID := uuid.New().String()

	first, err := svc.SelectShift(ctx, accountID, SelectShiftRequest{Shift: "AM"})
	assert.NoError(t, err)
	assert.Equal(t, "AM", first.Shift)

	second, err := svc.SelectShift(ctx, accountID, SelectShiftRequest{Shift: "PM"})
	assert.NoError(t, err)
	assert.Equal(t, "PM", second.Shift)

	// re-selection overwrites in place, it never grows a second row
	assert.Len(t, repo.sessions, 1)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_SelectShift_InvalidShift(t *testing.T) {
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: uuid.New()}}
	svc := newSessionService(newFakeRepo(), staffRepo, &fakeLister{}, &fakeClientRepo{})

	_, err := svc.SelectShift(context.Background(), uuid.New().String(), SelectShiftRequest{Shift: "NIGHT"})
	assert.ErrorIs(t, err, shiftsessionerrors.ErrInvalidShift)
}

func TestService_GetSession_NoSessionForDate(t *testing.T) {
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: uuid.New()}}
	svc := newSessionService(newFakeRepo(), staffRepo, &fakeLister{}, &fakeClientRepo{})

	_, err := svc.GetSession(context.Background(), uuid.New().String(), "2026-07-01")
	assert.ErrorIs(t, err, shiftsessionerrors.ErrNoSessionForDate)
}

func TestService_GetSession_InvalidDate(t *testing.T) {
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: uuid.New()}}
	svc := newSessionService(newFakeRepo(), staffRepo, &fakeLister{}, &fakeClientRepo{})

	_, err := svc.GetSession(context.Background(), uuid.New().String(), "01/07/2026")
	assert.ErrorIs(t, err, shiftsessionerrors.ErrInvalidDate)
}

func TestService_ListClients_FilteredBySessionShift(t *testing.T) {
	staffID := uuid.New()
	amClient := client.Client{ID: uuid.New(), FullName: "Morning Stop", Shift: "AM", Quantity: 3}
	pmClient := client.Client{ID: uuid.New(), FullName: "Evening Stop", Shift: "PM", Quantity: 2}

	repo := newFakeRepo()
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: staffID}}
	lister := &fakeLister{ids: []string{amClient.ID.String(), pmClient.ID.String()}}
	clients := &fakeClientRepo{clients: []client.Client{amClient, pmClient}}
	svc := newSessionService(repo, staffRepo, lister, clients)
	ctx := context.Background()
	accountID := uuid.New().String()

	_, err := svc.SelectShift(ctx, accountID, SelectShiftRequest{Shift: "AM"})
	assert.NoError(t, err)

	out, err := svc.ListClients(ctx, accountID)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Morning Stop", out[0].FullName)

	// switching the session flips the gated list
	_, err = svc.SelectShift(ctx, accountID, SelectShiftRequest{Shift: "PM"})
	assert.NoError(t, err)

	out, err = svc.ListClients(ctx, accountID)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Evening Stop", out[0].FullName)
}

func TestService_ListClients_NoSessionYet(t *testing.T) {
	staffRepo := &fakeStaffRepo{profile: &staff.StaffProfile{ID: uuid.New()}}
	svc := newSessionService(newFakeRepo(), staffRepo, &fakeLister{}, &fakeClientRepo{})

	_, err := svc.ListClients(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, shiftsessionerrors.ErrNoSessionForDate)
}
