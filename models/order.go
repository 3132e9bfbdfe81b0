package models

import "time"

// Status order sesuai nilai yang dikirim server (tidak diubah di sisi client).
const (
	OrderStatusConfirmed = "Confirmed"
	OrderStatusPreparing = "Preparing"
	OrderStatusReady     = "Ready"
	OrderStatusServed    = "Served"
)

// orderStatusRank dipakai hanya untuk mendeteksi push status yang mundur
// (server tetap otoritatif, status mundur tetap diterapkan tapi dicatat).
var orderStatusRank = map[string]int{
	OrderStatusConfirmed: 0,
	OrderStatusPreparing: 1,
	OrderStatusReady:     2,
	OrderStatusServed:    3,
}

// IsBackwardOrderStatus melaporkan apakah perpindahan dari from ke to
// merupakan transisi mundur dalam urutan status order.
func IsBackwardOrderStatus(from, to string) bool {
	fromRank, okFrom := orderStatusRank[from]
	toRank, okTo := orderStatusRank[to]
	if !okFrom || !okTo {
		return false
	}
	return toRank < fromRank
}

// SubmittedOrder adalah order yang sudah dikonfirmasi server. Setelah dibuat,
// client hanya memperbarui status lewat event push, tidak pernah menghapusnya.
type SubmittedOrder struct {
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number,omitempty"`
	TableNumber   string    `json:"table_number,omitempty"`
	Status        string    `json:"status"`
	GrandTotal    float64   `json:"grand_total"`
	EstimatedTime int       `json:"estimated_time,omitempty"`
	TrackURL      string    `json:"track_url,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// OrderItemProgress adalah status satu item pada tampilan tracking order.
type OrderItemProgress struct {
	ItemName string `json:"item_name"`
	Qty      int    `json:"qty"`
	Status   string `json:"status"`
}

// OrderProgress adalah snapshot tracking order dari server (read-only).
type OrderProgress struct {
	OrderID       string              `json:"order_id"`
	OrderNumber   string              `json:"order_number,omitempty"`
	TableNumber   string              `json:"table_number,omitempty"`
	Status        string              `json:"status"`
	Progress      int                 `json:"progress"`
	EstimatedTime int                 `json:"estimated_time,omitempty"`
	Items         []OrderItemProgress `json:"items"`
	GrandTotal    float64             `json:"grand_total"`
	IsPaid        bool                `json:"is_paid"`
}
