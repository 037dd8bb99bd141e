package client

type CreateClientRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Shift     string  `json:"shift" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

type UpdateClientRequest struct {
	FullName  *string  `json:"full_name"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Shift     *string  `json:"shift"`
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

type ClientResponse struct {
	ID              string  `json:"id"`
	ClientNumber    string  `json:"client_number"`
	FullName        string  `json:"full_name"`
	Address         string  `json:"address,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Shift           string  `json:"shift"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DeliveryStatus  string  `json:"delivery_status"`
	DeliveryNotes   *string `json:"delivery_notes,omitempty"`
	AssignedStaffID *string `json:"assigned_staff_id,omitempty"`
}

type HistoryEntryResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	Quantity float64 `json:"quantity"`
	Reason   *string `json:"reason,omitempty"`
}
