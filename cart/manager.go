package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/storage"
	"github.com/yeremiapane/restaurant-client/utils"
)

// MenuSource menyediakan data item dan pengaturan menu untuk validasi dan
// perhitungan total. Diimplementasikan oleh menu.Catalog.
type MenuSource interface {
	Item(menuItemID string) (*models.MenuItem, bool)
	Settings() models.MenuSettings
}

// Manager memegang keranjang lokal satu session customer: menambah item,
// menghitung total, submit order, dan mengikuti status order lewat event
// push. Semua state hanya dimutasi lewat method di sini.
type Manager struct {
	mutex sync.Mutex

	caller    client.Caller
	store     storage.Store
	menus     MenuSource
	tableCode string

	lines     []models.CartLineItem
	submitted *models.SubmittedOrder
}

// NewManager membuat manager untuk satu meja dan memulihkan keranjang yang
// tersimpan dari session sebelumnya. Data tersimpan yang rusak diabaikan dan
// keranjang mulai kosong.
func NewManager(caller client.Caller, store storage.Store, menus MenuSource, tableCode string) *Manager {
	m := &Manager{
		caller:    caller,
		store:     store,
		menus:     menus,
		tableCode: tableCode,
	}
	m.restore()
	return m
}

func (m *Manager) storageKey() string {
	return "cart:" + m.tableCode
}

// restore memuat keranjang dari storage lokal.
func (m *Manager) restore() {
	if m.store == nil {
		return
	}

	raw, found, err := m.store.Get(m.storageKey())
	if err != nil {
		utils.ErrorLogger.Errorf("failed to read stored cart: %v", err)
		return
	}
	if !found || raw == "" {
		return
	}

	var lines []models.CartLineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		corrupt := &utils.StorageCorruptionError{Key: m.storageKey(), Err: err}
		utils.ErrorLogger.Errorf("resetting cart: %v", corrupt)
		m.lines = nil
		m.persistLocked()
		return
	}

	m.lines = lines
	utils.InfoLogger.Infof("restored cart with %d lines for table %s", len(lines), m.tableCode)
}

// persistLocked menulis keranjang ke storage. Gagal menyimpan hanya dicatat,
// tidak menggagalkan operasi keranjang. Harus dipanggil dengan mutex terkunci.
func (m *Manager) persistLocked() {
	if m.store == nil {
		return
	}

	raw, err := json.Marshal(m.lines)
	if err != nil {
		utils.ErrorLogger.Errorf("failed to encode cart: %v", err)
		return
	}
	if err := m.store.Set(m.storageKey(), string(raw)); err != nil {
		utils.ErrorLogger.Errorf("failed to persist cart: %v", err)
	}
}

// AddItem menambahkan baris baru ke keranjang. Tidak pernah digabung dengan
// baris lain walau item dan modifier-nya sama persis.
func (m *Manager) AddItem(menuItemID string, quantity int, selections []models.ModifierSelection, instructions string) (*models.CartLineItem, error) {
	if quantity < 1 {
		return nil, &utils.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	item, found := m.menus.Item(menuItemID)
	if !found {
		return nil, &utils.ValidationError{Field: "menu_item", Message: "unknown menu item"}
	}
	if !item.IsAvailable {
		return nil, &utils.ValidationError{Field: "menu_item", Message: fmt.Sprintf("%s is not available", item.Name)}
	}

	if err := validateSelections(item.ModifierGroups, selections); err != nil {
		return nil, err
	}

	unitPrice := item.Price
	if item.DiscountedPrice != nil {
		unitPrice = *item.DiscountedPrice
	}

	line := models.CartLineItem{
		LocalID:             uuid.NewString(),
		MenuItemID:          menuItemID,
		DisplayName:         item.Name,
		UnitPrice:           unitPrice,
		Quantity:            quantity,
		SelectedModifiers:   append([]models.ModifierSelection(nil), selections...),
		SpecialInstructions: instructions,
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lines = append(m.lines, line)
	m.persistLocked()

	return &line, nil
}

// validateSelections memeriksa aturan modifier group: group wajib harus punya
// pilihan, group single-choice maksimal satu pilihan.
func validateSelections(groups []models.ModifierGroup, selections []models.ModifierSelection) error {
	countByGroup := make(map[string]int)
	for _, sel := range selections {
		countByGroup[sel.ModifierGroupID]++
	}

	for _, group := range groups {
		count := countByGroup[group.ID]
		if group.Required && count == 0 {
			return &utils.ValidationError{
				Field:   "modifiers",
				Message: fmt.Sprintf("please choose an option for %s", group.Name),
			}
		}
		if group.SelectionMode == models.SelectionSingle && count > 1 {
			return &utils.ValidationError{
				Field:   "modifiers",
				Message: fmt.Sprintf("%s allows only one option", group.Name),
			}
		}
	}
	return nil
}

// ChangeQuantity menambah/mengurangi qty satu baris. Qty yang jatuh ke nol
// atau di bawahnya menghapus baris. LocalID yang tidak dikenal bukan error.
func (m *Manager) ChangeQuantity(localID string, delta int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.lines {
		if m.lines[i].LocalID != localID {
			continue
		}

		m.lines[i].Quantity += delta
		if m.lines[i].Quantity <= 0 {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
		}
		m.persistLocked()
		return
	}
}

// Clear mengosongkan keranjang secara eksplisit.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lines = nil
	m.persistLocked()
}

// Lines mengembalikan salinan isi keranjang.
func (m *Manager) Lines() []models.CartLineItem {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]models.CartLineItem(nil), m.lines...)
}

// Subtotal menjumlahkan total semua baris. Murni, tanpa efek samping.
func (m *Manager) Subtotal() float64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var subtotal float64
	for i := range m.lines {
		subtotal += m.lines[i].LineTotal()
	}
	return subtotal
}

// Totals menghitung rincian total seperti yang dihitung server: subtotal,
// service charge dari subtotal, lalu VAT dari jumlah keduanya.
type Totals struct {
	Subtotal      float64
	ServiceCharge float64
	VAT           float64
	GrandTotal    float64
}

func (m *Manager) Totals() Totals {
	settings := m.menus.Settings()
	subtotal := m.Subtotal()

	serviceCharge := subtotal * settings.ServiceChargePercent / 100
	vat := (subtotal + serviceCharge) * settings.VATPercent / 100

	return Totals{
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		VAT:           vat,
		GrandTotal:    subtotal + serviceCharge + vat,
	}
}

// SubmittedOrder mengembalikan order yang sedang di-track, atau nil.
func (m *Manager) SubmittedOrder() *models.SubmittedOrder {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.submitted == nil {
		return nil
	}
	copied := *m.submitted
	return &copied
}
