package models

import "time"

// Status tiket dapur sesuai nilai dari server. Tiket yang sudah di-bump
// (served) hilang dari daftar aktif, tidak punya status sendiri di board.
const (
	TicketStatusNew       = "New"
	TicketStatusPreparing = "Preparing"
	TicketStatusReady     = "Ready"
)

// Prioritas tiket dapur, bisa diubah staff dari status apapun.
const (
	PriorityNormal = "Normal"
	PriorityRush   = "Rush"
)

// TicketItem adalah satu item di dalam tiket dapur.
type TicketItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	ModifiersLabel string `json:"modifiers_label,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Status         string `json:"status"`
}

// KitchenOrderTicket adalah satu tiket di kitchen display. Satu order bisa
// pecah menjadi beberapa tiket per station, jadi ID tiket berbeda dari
// OrderID.
type KitchenOrderTicket struct {
	ID                string       `json:"id"`
	OrderID           string       `json:"order_id"`
	TableNumber       *string      `json:"table_number,omitempty"`
	OrderType         string       `json:"order_type"`
	Station           string       `json:"station,omitempty"`
	Status            string       `json:"status"`
	Priority          string       `json:"priority"`
	CreatedAt         time.Time    `json:"created_at"`
	Items             []TicketItem `json:"items"`
	IsAdditionalItems bool         `json:"is_additional"`
	OrderNotes        string       `json:"notes,omitempty"`
}

// ElapsedSeconds menghitung umur tiket terhadap now. Pembacaan negatif
// akibat clock skew di-clamp ke nol.
func (t *KitchenOrderTicket) ElapsedSeconds(now time.Time) int64 {
	elapsed := int64(now.Sub(t.CreatedAt) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
