package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"milkroute/internal/delivery"
)

const unknownStaffName = "Unknown Staff"

// Trend bucket periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// successRate is defined as 0 when total is 0; an empty range is a normal
// outcome, never a division error.
func successRate(delivered, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(delivered) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// computeTotals sums quantity and revenue across Delivered records only.
func computeTotals(records []delivery.DeliveryRecord) Totals {
	var t Totals
	for _, rec := range records {
		if rec.Status != delivery.StatusDelivered {
			continue
		}
		t.Quantity += rec.Quantity
		t.Revenue += rec.Price
	}
	return t
}

func countByStatus(records []delivery.DeliveryRecord) (delivered, notDelivered int64) {
	for _, rec := range records {
		if rec.Status == delivery.StatusDelivered {
			delivered++
		} else {
			notDelivered++
		}
	}
	return delivered, notDelivered
}

// groupByStaff aggregates per recording staff member. Staff whose profile no
// longer resolves keep their records under "Unknown Staff".
func groupByStaff(records []delivery.DeliveryRecord, names map[string]string) []StaffPerformance {
	grouped := make(map[string]*StaffPerformance)
	for _, rec := range records {
		id := rec.StaffID.String()
		perf, ok := grouped[id]
		if !ok {
			name, found := names[id]
			if !found || name == "" {
				name = unknownStaffName
			}
			perf = &StaffPerformance{StaffID: id, StaffName: name}
			grouped[id] = perf
		}
		perf.Total++
		if rec.Status == delivery.StatusDelivered {
			perf.Delivered++
			perf.Quantity += rec.Quantity
			perf.Revenue += rec.Price
		} else {
			perf.NotDelivered++
		}
	}

	out := make([]StaffPerformance, 0, len(grouped))
	for _, perf := range grouped {
		perf.SuccessRate = successRate(perf.Delivered, perf.Total)
		out = append(out, *perf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Delivered != out[j].Delivered {
			return out[i].Delivered > out[j].Delivered
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out
}

// groupByShift is the same aggregation keyed by shift.
func groupByShift(records []delivery.DeliveryRecord) []ShiftAnalytics {
	grouped := make(map[string]*ShiftAnalytics)
	for _, rec := range records {
		sa, ok := grouped[rec.Shift]
		if !ok {
			sa = &ShiftAnalytics{Shift: rec.Shift}
			grouped[rec.Shift] = sa
		}
		sa.Total++
		if rec.Status == delivery.StatusDelivered {
			sa.Delivered++
			sa.Quantity += rec.Quantity
			sa.Revenue += rec.Price
		} else {
			sa.NotDelivered++
		}
	}

	out := make([]ShiftAnalytics, 0, len(grouped))
	for _, sa := range grouped {
		sa.SuccessRate = successRate(sa.Delivered, sa.Total)
		out = append(out, *sa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shift < out[j].Shift })
	return out
}

func bucketKey(period string, date time.Time) string {
	switch period {
	case PeriodWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonthly:
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}

// bucketTrends groups records into day/week/month buckets, sorted ascending
// by bucket key. Bucket keys are chosen so lexical order equals time order.
func bucketTrends(records []delivery.DeliveryRecord, period string) []TrendBucket {
	grouped := make(map[string]*TrendBucket)
	for _, rec := range records {
		key := bucketKey(period, rec.DeliveryDate)
		b, ok := grouped[key]
		if !ok {
			b = &TrendBucket{Bucket: key}
			grouped[key] = b
		}
		b.Deliveries++
		if rec.Status == delivery.StatusDelivered {
			b.Delivered++
			b.Quantity += rec.Quantity
			b.Revenue += rec.Price
		}
	}

	out := make([]TrendBucket, 0, len(grouped))
	for _, b := range grouped {
		b.SuccessRate = successRate(b.Delivered, b.Deliveries)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

// tallyReasons counts Not-Delivered records by their free-text note, most
// common first. Notes are an uncontrolled vocabulary; identical text is the
// only grouping available.
func tallyReasons(records []delivery.DeliveryRecord) []ReasonCount {
	grouped := make(map[string]int64)
	for _, rec := range records {
		if rec.Status != delivery.StatusNotDelivered || rec.Note == nil {
			continue
		}
		reason := strings.TrimSpace(*rec.Note)
		if reason == "" {
			continue
		}
		grouped[reason]++
	}

	out := make([]ReasonCount, 0, len(grouped))
	for reason, count := range grouped {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// latestPerClient keeps only the most recent record per client, ties broken
// by update recency.
func latestPerClient(records []delivery.DeliveryRecord) []delivery.DeliveryRecord {
	latest := make(map[string]delivery.DeliveryRecord)
	for _, rec := range records {
		id := rec.ClientID.String()
		cur, ok := latest[id]
		if !ok {
			latest[id] = rec
			continue
		}
		if rec.DeliveryDate.After(cur.DeliveryDate) ||
			(rec.DeliveryDate.Equal(cur.DeliveryDate) && rec.UpdatedAt.After(cur.UpdatedAt)) {
			latest[id] = rec
		}
	}

	out := make([]delivery.DeliveryRecord, 0, len(latest))
	for _, rec := range latest {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientID.String() < out[j].ClientID.String()
	})
	return out
}
