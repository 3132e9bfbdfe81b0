package models

// ModifierSelection merepresentasikan satu opsi modifier yang dipilih customer
// untuk sebuah line item (misal: ukuran "Large" dengan tambahan harga).
type ModifierSelection struct {
	ModifierGroupID string  `json:"modifier_group_id"`
	OptionID        string  `json:"option_id"`
	Label           string  `json:"label"`
	PriceDelta      float64 `json:"price_delta"`
}

// CartLineItem adalah satu baris di keranjang, belum dikirim ke server.
// Setiap aksi "add to cart" menghasilkan baris baru, tidak pernah digabung.
type CartLineItem struct {
	LocalID             string              `json:"local_id"`
	MenuItemID          string              `json:"menu_item_id"`
	DisplayName         string              `json:"display_name"`
	UnitPrice           float64             `json:"unit_price"`
	Quantity            int                 `json:"quantity"`
	SelectedModifiers   []ModifierSelection `json:"selected_modifiers"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
}

// LineTotal menghitung total baris: (harga satuan + total modifier) * qty.
// Selalu dihitung ulang, tidak pernah disimpan terpisah.
func (li *CartLineItem) LineTotal() float64 {
	unit := li.UnitPrice
	for _, mod := range li.SelectedModifiers {
		unit += mod.PriceDelta
	}
	return unit * float64(li.Quantity)
}
