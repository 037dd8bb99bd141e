package assignment

type AssignRequest struct {
	StaffID  string `json:"staff_id" binding:"required,uuid"`
	ClientID string `json:"client_id" binding:"required,uuid"`
}

type UnassignRequest struct {
	StaffID  string `json:"staff_id" binding:"required,uuid"`
	ClientID string `json:"client_id" binding:"required,uuid"`
}

type ReconcileRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	Shift   string `json:"shift" binding:"required"`
}

// AssignmentResponse is the updated staff side of the ledger after a change.
type AssignmentResponse struct {
	StaffID         string   `json:"staff_id"`
	StaffName       string   `json:"staff_name"`
	AssignedClients []string `json:"assigned_clients"`
	TotalQuantity   float64  `json:"total_quantity"`
}

type ReconcileResponse struct {
	StaffID        string `json:"staff_id"`
	Shift          string `json:"shift"`
	RemainingCount int64  `json:"remaining_count"`
	DroppedCount   int64  `json:"dropped_count"`
}
