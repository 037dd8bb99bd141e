package events

import "time"

const DeliveryRecordedTopic = "milkroute.delivery.v1"

type DeliveryRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RecordID     string    `json:"record_id"`
	ClientID     string    `json:"client_id"`
	StaffID      string    `json:"staff_id"`
	DeliveryDate string    `json:"delivery_date"`
	Shift        string    `json:"shift"`
	Status       string    `json:"status"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	OccurredAt   time.Time `json:"occurred_at"`
}
