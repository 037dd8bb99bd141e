package analytics

import (
	"context"
	"sort"
	"time"

	analyticserrors "milkroute/internal/analytics/errors"
	"milkroute/internal/delivery"
	"milkroute/internal/shared/dateutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	GetDashboard(ctx context.Context, day, shift string) (DashboardResponse, error)
	GetTrends(ctx context.Context, period, startDate, endDate string) ([]TrendBucket, error)
	GetNonDeliveryReasons(ctx context.Context, startDate, endDate string) ([]ReasonCount, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{repo: repo, logger: l}
}

// GetDashboard assembles the operational dashboard for one day. Every block
// degrades to zero values on empty data; no block ever errors on "nothing
// recorded yet".
func (s *service) GetDashboard(ctx context.Context, day, shift string) (DashboardResponse, error) {
	date, err := dateutil.ParseDay(day)
	if err != nil {
		return DashboardResponse{}, analyticserrors.ErrInvalidDate
	}

	todayRecords, err := s.repo.FindRecordsInRange(ctx, date, date, shift)
	if err != nil {
		return DashboardResponse{}, err
	}

	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthRecords, err := s.repo.FindRecordsInRange(ctx, monthStart, date, shift)
	if err != nil {
		return DashboardResponse{}, err
	}

	clientCount, err := s.repo.CountClients(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	staffCount, err := s.repo.CountStaff(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	delivered, notDelivered := countByStatus(todayRecords)
	recorded := delivered + notDelivered
	pending := clientCount - recorded
	if pending < 0 {
		pending = 0
	}

	staffNames, err := s.repo.StaffNames(ctx, staffIDs(monthRecords))
	if err != nil {
		return DashboardResponse{}, err
	}

	snapshot := latestPerClient(todayRecords)
	snapshotRows, err := s.snapshotRows(ctx, snapshot)
	if err != nil {
		return DashboardResponse{}, err
	}

	priority := make([]SnapshotRow, 0)
	for _, row := range snapshotRows {
		if row.Status != delivery.StatusDelivered {
			priority = append(priority, row)
		}
	}

	return DashboardResponse{
		Counts: Counts{
			Clients:      clientCount,
			Staff:        staffCount,
			TodayRecords: recorded,
		},
		Today:   computeTotals(todayRecords),
		Monthly: computeTotals(monthRecords),
		DeliverySummary: DeliverySummary{
			Delivered:    delivered,
			NotDelivered: notDelivered,
			Pending:      pending,
			SuccessRate:  successRate(delivered, recorded),
		},
		PriorityClients:  priority,
		DeliveryRecords:  snapshotRows,
		StaffPerformance: groupByStaff(monthRecords, staffNames),
		ShiftAnalytics:   groupByShift(monthRecords),
	}, nil
}

// GetTrends buckets records by day, week, or month over the requested range,
// defaulting to the trailing 30 days.
func (s *service) GetTrends(ctx context.Context, period, startDate, endDate string) ([]TrendBucket, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	case "":
		period = PeriodDaily
	default:
		return nil, analyticserrors.ErrInvalidPeriod
	}

	start, end, err := resolveRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindRecordsInRange(ctx, start, end, "")
	if err != nil {
		return nil, err
	}
	return bucketTrends(records, period), nil
}

func (s *service) GetNonDeliveryReasons(ctx context.Context, startDate, endDate string) ([]ReasonCount, error) {
	start, end, err := resolveRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindRecordsInRange(ctx, start, end, "")
	if err != nil {
		return nil, err
	}
	return tallyReasons(records), nil
}

func (s *service) snapshotRows(ctx context.Context, records []delivery.DeliveryRecord) ([]SnapshotRow, error) {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ClientID.String())
	}
	names, err := s.repo.ClientNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]SnapshotRow, 0, len(records))
	for _, rec := range records {
		name := names[rec.ClientID.String()]
		if name == "" {
			name = "Unknown Client"
		}
		rows = append(rows, SnapshotRow{
			RecordID:   rec.ID.String(),
			ClientID:   rec.ClientID.String(),
			ClientName: name,
			Date:       rec.DeliveryDate.Format(dateutil.DayFormat),
			Shift:      rec.Shift,
			Status:     rec.Status,
			Quantity:   rec.Quantity,
			Price:      rec.Price,
			Note:       rec.Note,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ClientName != rows[j].ClientName {
			return rows[i].ClientName < rows[j].ClientName
		}
		return rows[i].ClientID < rows[j].ClientID
	})
	return rows, nil
}

func staffIDs(records []delivery.DeliveryRecord) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, rec := range records {
		id := rec.StaffID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// resolveRange parses an optional date range, defaulting to the trailing
// 30 days ending today.
func resolveRange(startDate, endDate string) (time.Time, time.Time, error) {
	end, err := dateutil.ParseDay(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, analyticserrors.ErrInvalidDate
	}

	var start time.Time
	if startDate == "" {
		start = end.AddDate(0, 0, -30)
	} else {
		start, err = dateutil.ParseDay(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, analyticserrors.ErrInvalidDate
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, analyticserrors.ErrInvalidRange
	}
	return start, end, nil
}
