package models

import "time"

// Jenis notifikasi yang muncul sebagai toast di admin desk.
const (
	NotifWaiterCall = "waiter_call"
	NotifOrderReady = "order_ready"
	NotifNewOrder   = "new_order"
)

// Notification adalah satu entri toast di sisi client. Feed notifikasi
// bersifat lokal per session, tidak pernah dikirim balik ke server.
type Notification struct {
	Kind        string    `json:"kind"`
	TableNumber string    `json:"table_number,omitempty"`
	Message     string    `json:"message"`
	ReceivedAt  time.Time `json:"received_at"`
}
