package staff

type CreateStaffRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Shift    string `json:"shift"`
}

type UpdateStaffRequest struct {
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Shift       *string `json:"shift"`
	IsAvailable *bool   `json:"is_available"`
}

type StaffResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	FullName        string   `json:"full_name"`
	Phone           string   `json:"phone,omitempty"`
	Location        string   `json:"location,omitempty"`
	Shift           string   `json:"shift"`
	IsAvailable     bool     `json:"is_available"`
	TotalQuantity   float64  `json:"total_quantity"`
	LastDeliveryAt  *string  `json:"last_delivery_at,omitempty"`
	AssignedClients []string `json:"assigned_clients"`
}
