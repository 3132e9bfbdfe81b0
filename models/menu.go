package models

// Mode pemilihan sebuah modifier group.
const (
	SelectionSingle = "single"
	SelectionMulti  = "multi"
)

// ModifierOption adalah satu pilihan dalam sebuah modifier group.
type ModifierOption struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	PriceDelta float64 `json:"price_delta"`
}

// ModifierGroup adalah kumpulan opsi kustomisasi untuk satu menu item,
// bertipe single-choice atau multi-choice.
type ModifierGroup struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SelectionMode string           `json:"selection_mode"`
	Required      bool             `json:"required"`
	Options       []ModifierOption `json:"options"`
}

// MenuItem adalah satu item menu yang bisa dipesan.
type MenuItem struct {
	ID              string          `json:"id"`
	Code            string          `json:"code,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           float64         `json:"price"`
	DiscountedPrice *float64        `json:"discounted_price,omitempty"`
	IsAvailable     bool            `json:"is_available"`
	ImageURL        string          `json:"image,omitempty"`
	PrepTimeMinutes int             `json:"preparation_time,omitempty"`
	ModifierGroups  []ModifierGroup `json:"modifier_groups,omitempty"`
}

// MenuCategory mengelompokkan item menu untuk ditampilkan.
type MenuCategory struct {
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Items        []MenuItem `json:"items"`
}

// MenuSettings adalah blok pengaturan yang ikut dikirim bersama menu.
type MenuSettings struct {
	EnableCallWaiter     bool    `json:"enable_call_waiter"`
	MinOrderAmount       float64 `json:"min_order_amount"`
	ServiceChargePercent float64 `json:"service_charge_percent"`
	VATPercent           float64 `json:"vat_percent"`
}

// Menu adalah payload lengkap hasil fetch-menu untuk satu branch/meja.
type Menu struct {
	Branch     string         `json:"branch,omitempty"`
	Currency   string         `json:"currency,omitempty"`
	Categories []MenuCategory `json:"categories"`
	Settings   MenuSettings   `json:"settings"`
}
