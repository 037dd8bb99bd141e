package shiftsession

type SelectShiftRequest struct {
	Shift string `json:"shift" binding:"required"`
}

type SessionResponse struct {
	ID          string `json:"id"`
	StaffID     string `json:"staff_id"`
	SessionDate string `json:"session_date"`
	Shift       string `json:"shift"`
}

// SessionClient is one client gated in by the day's selected shift.
type SessionClient struct {
	ID             string  `json:"id"`
	ClientNumber   string  `json:"client_number"`
	FullName       string  `json:"full_name"`
	Address        string  `json:"address,omitempty"`
	Shift          string  `json:"shift"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	DeliveryStatus string  `json:"delivery_status"`
}
