package analytics

type Totals struct {
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type DeliverySummary struct {
	Delivered    int64   `json:"delivered"`
	NotDelivered int64   `json:"not_delivered"`
	Pending      int64   `json:"pending"`
	SuccessRate  float64 `json:"success_rate"`
}

type Counts struct {
	Clients      int64 `json:"clients"`
	Staff        int64 `json:"staff"`
	TodayRecords int64 `json:"today_records"`
}

type StaffPerformance struct {
	StaffID      string  `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	Delivered    int64   `json:"delivered"`
	NotDelivered int64   `json:"not_delivered"`
	Total        int64   `json:"total"`
	SuccessRate  float64 `json:"success_rate"`
	Quantity     float64 `json:"quantity"`
	Revenue      float64 `json:"revenue"`
}

type ShiftAnalytics struct {
	Shift        string  `json:"shift"`
	Delivered    int64   `json:"delivered"`
	NotDelivered int64   `json:"not_delivered"`
	Total        int64   `json:"total"`
	SuccessRate  float64 `json:"success_rate"`
	Quantity     float64 `json:"quantity"`
	Revenue      float64 `json:"revenue"`
}

type TrendBucket struct {
	Bucket      string  `json:"bucket"`
	Deliveries  int64   `json:"deliveries"`
	Delivered   int64   `json:"delivered"`
	SuccessRate float64 `json:"success_rate"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// SnapshotRow is one current-status row per client: the most recent record
// for that client within the queried range.
type SnapshotRow struct {
	RecordID   string  `json:"record_id"`
	ClientID   string  `json:"client_id"`
	ClientName string  `json:"client_name"`
	Date       string  `json:"date"`
	Shift      string  `json:"shift"`
	Status     string  `json:"status"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Note       *string `json:"note,omitempty"`
}

type DashboardResponse struct {
	Counts           Counts             `json:"counts"`
	Today            Totals             `json:"today"`
	Monthly          Totals             `json:"monthly"`
	DeliverySummary  DeliverySummary    `json:"delivery_summary"`
	PriorityClients  []SnapshotRow      `json:"priority_clients"`
	DeliveryRecords  []SnapshotRow      `json:"delivery_records"`
	StaffPerformance []StaffPerformance `json:"staff_performance"`
	ShiftAnalytics   []ShiftAnalytics   `json:"shift_analytics"`
}
