package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	analyticserrors "milkroute/internal/analytics/errors"
	"milkroute/internal/delivery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	findRecordsInRangeFn func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error)
	staffNamesFn         func(ctx context.Context, ids []string) (map[string]string, error)
	clientNamesFn        func(ctx context.Context, ids []string) (map[string]string, error)
	countClientsFn       func(ctx context.Context) (int64, error)
	countStaffFn         func(ctx context.Context) (int64, error)
}

func (f *fakeRepo) FindRecordsInRange(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
	return f.findRecordsInRangeFn(ctx, start, end, shift)
}
func (f *fakeRepo) StaffNames(ctx context.Context, ids []string) (map[string]string, error) {
	return f.staffNamesFn(ctx, ids)
}
func (f *fakeRepo) ClientNames(ctx context.Context, ids []string) (map[string]string, error) {
	return f.clientNamesFn(ctx, ids)
}
func (f *fakeRepo) CountClients(ctx context.Context) (int64, error) { return f.countClientsFn(ctx) }
func (f *fakeRepo) CountStaff(ctx context.Context) (int64, error)   { return f.countStaffFn(ctx) }

func emptyRepo() *fakeRepo {
	return &fakeRepo{
		findRecordsInRangeFn: func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
			return nil, nil
		},
		staffNamesFn: func(ctx context.Context, ids []string) (map[string]string, error) {
			return map[string]string{}, nil
		},
		clientNamesFn: func(ctx context.Context, ids []string) (map[string]string, error) {
			return map[string]string{}, nil
		},
		countClientsFn: func(ctx context.Context) (int64, error) { return 0, nil },
		countStaffFn:   func(ctx context.Context) (int64, error) { return 0, nil },
	}
}

func TestService_GetDashboard_EmptyDay(t *testing.T) {
	svc := NewService(emptyRepo())

	resp, err := svc.GetDashboard(context.Background(), "2026-04-01", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.Counts.TodayRecords)
	assert.Equal(t, float64(0), resp.DeliverySummary.SuccessRate)
	assert.Equal(t, int64(0), resp.DeliverySummary.Pending)
	assert.Empty(t, resp.PriorityClients)
	assert.Empty(t, resp.StaffPerformance)
}

func TestService_GetDashboard_PendingAndPriority(t *testing.T) {
	staffID := uuid.New()
	clientA := uuid.New()
	clientB := uuid.New()
	date, _ := time.Parse("2006-01-02", "2026-04-01")

	records := []delivery.DeliveryRecord{
		{ID: uuid.New(), ClientID: clientA, StaffID: staffID, DeliveryDate: date, Shift: "AM", Status: delivery.StatusDelivered, Quantity: 5, Price: 50},
		{ID: uuid.New(), ClientID: clientB, StaffID: staffID, DeliveryDate: date, Shift: "AM", Status: delivery.StatusNotDelivered},
	}

	repo := emptyRepo()
	repo.findRecordsInRangeFn = func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
		return records, nil
	}
	repo.countClientsFn = func(ctx context.Context) (int64, error) { return 5, nil }
	repo.countStaffFn = func(ctx context.Context) (int64, error) { return 1, nil }
	repo.staffNamesFn = func(ctx context.Context, ids []string) (map[string]string, error) {
		return map[string]string{staffID.String(): "Ravi"}, nil
	}
	repo.clientNamesFn = func(ctx context.Context, ids []string) (map[string]string, error) {
		return map[string]string{clientA.String(): "Acme Dairy", clientB.String(): "Binu Stores"}, nil
	}

	svc := NewService(repo)
	resp, err := svc.GetDashboard(context.Background(), "2026-04-01", "")
	assert.NoError(t, err)

	assert.Equal(t, int64(2), resp.Counts.TodayRecords)
	assert.Equal(t, int64(3), resp.DeliverySummary.Pending)
	assert.Equal(t, float64(50), resp.DeliverySummary.SuccessRate)
	assert.Equal(t, float64(5), resp.Today.Quantity)
	assert.Equal(t, float64(50), resp.Today.Revenue)

	// only the not-delivered client is a priority row
	assert.Len(t, resp.PriorityClients, 1)
	assert.Equal(t, "Binu Stores", resp.PriorityClients[0].ClientName)

	assert.Len(t, resp.StaffPerformance, 1)
	assert.Equal(t, "Ravi", resp.StaffPerformance[0].StaffName)
}

func TestService_GetDashboard_InvalidDate(t *testing.T) {
	svc := NewService(emptyRepo())

	_, err := svc.GetDashboard(context.Background(), "not-a-date", "")
	assert.ErrorIs(t, err, analyticserrors.ErrInvalidDate)
}

func TestService_GetTrends_InvalidPeriod(t *testing.T) {
	svc := NewService(emptyRepo())

	_, err := svc.GetTrends(context.Background(), "hourly", "", "")
	assert.ErrorIs(t, err, analyticserrors.ErrInvalidPeriod)
}

func TestService_GetTrends_DefaultsToTrailingWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := emptyRepo()
	repo.findRecordsInRangeFn = func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	}

	svc := NewService(repo)
	_, err := svc.GetTrends(context.Background(), "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, gotEnd.AddDate(0, 0, -30), gotStart)
}

func TestService_GetTrends_StartAfterEnd(t *testing.T) {
	svc := NewService(emptyRepo())

	_, err := svc.GetTrends(context.Background(), "daily", "2026-05-10", "2026-05-01")
	assert.ErrorIs(t, err, analyticserrors.ErrInvalidRange)
}

func TestService_GetNonDeliveryReasons(t *testing.T) {
	note := "Client absent"
	repo := emptyRepo()
	repo.findRecordsInRangeFn = func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
		return []delivery.DeliveryRecord{
			{Status: delivery.StatusNotDelivered, Note: &note},
			{Status: delivery.StatusNotDelivered, Note: &note},
		}, nil
	}

	svc := NewService(repo)
	out, err := svc.GetNonDeliveryReasons(context.Background(), "2026-05-01", "2026-05-31")
	assert.NoError(t, err)
	assert.Equal(t, []ReasonCount{{Reason: "Client absent", Count: 2}}, out)
}

func TestService_GetDashboard_RepoError(t *testing.T) {
	repo := emptyRepo()
	repo.findRecordsInRangeFn = func(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
		return nil, errors.New("db down")
	}

	svc := NewService(repo)
	_, err := svc.GetDashboard(context.Background(), "", "")
	assert.Error(t, err)
}
