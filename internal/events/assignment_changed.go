package events

import "time"

const AssignmentChangedTopic = "milkroute.assignment.v1"

const (
	AssignmentActionAssigned   = "assigned"
	AssignmentActionUnassigned = "unassigned"
)

type AssignmentChangedEvent struct {
	EventType  string    `json:"event_type"`
	Action     string    `json:"action"`
	StaffID    string    `json:"staff_id"`
	ClientID   string    `json:"client_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
