package delivery

type RecordDeliveredRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
	Shift    string `json:"shift" binding:"required"`
	Date     string `json:"date"`
}

type RecordNotDeliveredRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
	Shift    string `json:"shift" binding:"required"`
	Date     string `json:"date"`
	Reason   string `json:"reason" binding:"required"`
}

type DeliveryRecordResponse struct {
	ID           string  `json:"id"`
	ClientID     string  `json:"client_id"`
	ClientName   string  `json:"client_name,omitempty"`
	StaffID      string  `json:"staff_id"`
	DeliveryDate string  `json:"delivery_date"`
	Shift        string  `json:"shift"`
	Status       string  `json:"status"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
	Note         *string `json:"note,omitempty"`
}
