package models

// Status meja pada floor view.
const (
	TableStatusAvailable = "Available"
	TableStatusOccupied  = "Occupied"
	TableStatusReserved  = "Reserved"
)

// Table adalah satu meja pada denah lantai (floor plan) di admin desk.
type Table struct {
	ID           string             `json:"id"`
	TableNumber  string             `json:"table_number"`
	Capacity     int                `json:"capacity"`
	Status       string             `json:"status"`
	Location     string             `json:"location,omitempty"`
	PositionX    float64            `json:"position_x"`
	PositionY    float64            `json:"position_y"`
	Guests       int                `json:"guests"`
	CurrentOrder *TableOrderSummary `json:"current_order,omitempty"`
}

// TableOrderSummary adalah ringkasan order aktif yang menempel di satu meja.
type TableOrderSummary struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}
