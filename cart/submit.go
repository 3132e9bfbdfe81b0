package cart

import (
	"encoding/json"
	"errors"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

// SubmitOptions adalah data tambahan yang ikut dikirim saat submit order.
type SubmitOptions struct {
	OrderType     string
	CustomerName  string
	CustomerPhone string
	Notes         string
	Language      string
}

// Submit mengirim seluruh isi keranjang ke server. Kalau sudah ada order
// aktif untuk session ini, item dikirim sebagai tambahan ke order tersebut.
// Keranjang hanya dikosongkan setelah server mengonfirmasi; kegagalan apapun
// membiarkan keranjang utuh.
func (m *Manager) Submit(opts SubmitOptions) (*models.SubmittedOrder, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.lines) == 0 {
		return nil, &utils.ValidationError{Field: "items", Message: "no items in order"}
	}

	items := make([]map[string]interface{}, 0, len(m.lines))
	for i := range m.lines {
		line := &m.lines[i]
		modifiers := make([]map[string]interface{}, 0, len(line.SelectedModifiers))
		for _, mod := range line.SelectedModifiers {
			modifiers = append(modifiers, map[string]interface{}{
				"modifier_group":   mod.ModifierGroupID,
				"option":           mod.OptionID,
				"label":            mod.Label,
				"additional_price": mod.PriceDelta,
			})
		}
		items = append(items, map[string]interface{}{
			"menu_item": line.MenuItemID,
			"qty":       line.Quantity,
			"modifiers": modifiers,
			"notes":     line.SpecialInstructions,
		})
	}

	if m.submitted != nil && m.submitted.Status != models.OrderStatusServed {
		return m.submitAdditionalLocked(items, opts)
	}
	return m.submitNewLocked(items, opts)
}

func (m *Manager) submitNewLocked(items []map[string]interface{}, opts SubmitOptions) (*models.SubmittedOrder, error) {
	orderType := opts.OrderType
	if orderType == "" {
		orderType = "Dine In"
	}

	args := map[string]interface{}{
		"table_code": m.tableCode,
		"items":      items,
		"order_type": orderType,
	}
	if opts.CustomerName != "" {
		args["customer_name"] = opts.CustomerName
	}
	if opts.CustomerPhone != "" {
		args["customer_phone"] = opts.CustomerPhone
	}
	if opts.Notes != "" {
		args["notes"] = opts.Notes
	}
	if opts.Language != "" {
		args["language"] = opts.Language
	}

	result, err := m.caller.Call(client.MethodPlaceOrder, args)
	if err != nil {
		return nil, &utils.SubmissionError{Transport: true}
	}
	if !result.Success {
		return nil, &utils.SubmissionError{Reason: result.Message}
	}

	var submitted models.SubmittedOrder
	if err := result.DecodeData(&submitted); err != nil {
		return nil, &utils.SubmissionError{Transport: true}
	}
	// Order baru selalu mulai dari Confirmed di sisi client; event push
	// berikutnya yang menggesernya.
	submitted.Status = models.OrderStatusConfirmed

	m.lines = nil
	m.persistLocked()
	m.submitted = &submitted

	utils.InfoLogger.Infof("order %s submitted for table %s", submitted.OrderID, m.tableCode)

	copied := submitted
	return &copied, nil
}

func (m *Manager) submitAdditionalLocked(items []map[string]interface{}, opts SubmitOptions) (*models.SubmittedOrder, error) {
	args := map[string]interface{}{
		"order_id": m.submitted.OrderID,
		"items":    items,
	}
	if opts.Language != "" {
		args["language"] = opts.Language
	}

	result, err := m.caller.Call(client.MethodAddItemsToOrder, args)
	if err != nil {
		return nil, &utils.SubmissionError{Transport: true}
	}
	if !result.Success {
		return nil, &utils.SubmissionError{Reason: result.Message}
	}

	var updated struct {
		GrandTotal float64 `json:"grand_total"`
	}
	if err := result.DecodeData(&updated); err == nil && updated.GrandTotal > 0 {
		m.submitted.GrandTotal = updated.GrandTotal
	}

	m.lines = nil
	m.persistLocked()

	utils.InfoLogger.Infof("added items to order %s", m.submitted.OrderID)

	copied := *m.submitted
	return &copied, nil
}

// OnStatusEvent menerapkan event perubahan status order. Event untuk order
// lain diabaikan; status yang sama dengan sekarang adalah no-op. Status
// mundur tetap diterapkan karena server otoritatif, tapi dicatat sebagai
// warning.
func (m *Manager) OnStatusEvent(orderID, status string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.submitted == nil || m.submitted.OrderID != orderID {
		return
	}
	if m.submitted.Status == status {
		return
	}

	if models.IsBackwardOrderStatus(m.submitted.Status, status) {
		utils.InfoLogger.Warnf("order %s status moved backward: %s -> %s",
			orderID, m.submitted.Status, status)
	}

	m.submitted.Status = status
	utils.InfoLogger.Infof("order %s status: %s", orderID, status)
}

// BindEvents mendaftarkan handler status order ke event feed.
func (m *Manager) BindEvents(sub client.Subscriber) {
	sub.Subscribe(client.EventOrderStatus, func(payload json.RawMessage) {
		var evt struct {
			OrderID string `json:"order_id"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(payload, &evt); err != nil {
			utils.ErrorLogger.Errorf("invalid order status event: %v", err)
			return
		}
		m.OnStatusEvent(evt.OrderID, evt.Status)
	})
}

// TrackProgress mengambil snapshot tracking order yang sedang berjalan.
func (m *Manager) TrackProgress() (*models.OrderProgress, error) {
	m.mutex.Lock()
	submitted := m.submitted
	m.mutex.Unlock()

	if submitted == nil {
		return nil, errors.New("no order to track")
	}

	result, err := m.caller.Call(client.MethodGetOrderStatus, map[string]interface{}{
		"order_id": submitted.OrderID,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "error getting order status"
		}
		return nil, errors.New(message)
	}

	var progress models.OrderProgress
	if err := result.DecodeData(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
