package desk

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

// NotificationCenter mengumpulkan toast untuk staff dari event realtime.
// Payload event di sini hanya bahan teks toast, bukan state: event yang
// hilang atau dobel tidak merusak apa-apa.
type NotificationCenter struct {
	mutex sync.Mutex

	items []models.Notification
	limit int

	// OnToast dipanggil tiap notifikasi baru (untuk langsung ditampilkan).
	OnToast func(models.Notification)
}

// NewNotificationCenter membuat center dengan kapasitas riwayat tertentu.
func NewNotificationCenter(limit int) *NotificationCenter {
	if limit <= 0 {
		limit = 50
	}
	return &NotificationCenter{limit: limit}
}

func (nc *NotificationCenter) push(notif models.Notification) {
	nc.mutex.Lock()
	nc.items = append(nc.items, notif)
	if len(nc.items) > nc.limit {
		nc.items = nc.items[len(nc.items)-nc.limit:]
	}
	callback := nc.OnToast
	nc.mutex.Unlock()

	if callback != nil {
		callback(notif)
	}
}

// Notifications mengembalikan salinan riwayat, paling baru di akhir.
func (nc *NotificationCenter) Notifications() []models.Notification {
	nc.mutex.Lock()
	defer nc.mutex.Unlock()
	return append([]models.Notification(nil), nc.items...)
}

// BindEvents mendaftarkan handler toast ke event feed.
func (nc *NotificationCenter) BindEvents(sub client.Subscriber) {
	sub.Subscribe(client.EventWaiterCall, func(payload json.RawMessage) {
		table := decodeTableNumber(payload)
		nc.push(models.Notification{
			Kind:        models.NotifWaiterCall,
			TableNumber: table,
			Message:     fmt.Sprintf("Table %s is calling a waiter", table),
			ReceivedAt:  time.Now(),
		})
	})

	sub.Subscribe(client.EventOrderReady, func(payload json.RawMessage) {
		table := decodeTableNumber(payload)
		nc.push(models.Notification{
			Kind:        models.NotifOrderReady,
			TableNumber: table,
			Message:     fmt.Sprintf("Order for table %s is ready to serve", table),
			ReceivedAt:  time.Now(),
		})
	})

	sub.Subscribe(client.EventNewOrder, func(payload json.RawMessage) {
		table := decodeTableNumber(payload)
		nc.push(models.Notification{
			Kind:        models.NotifNewOrder,
			TableNumber: table,
			Message:     fmt.Sprintf("New order from table %s", table),
			ReceivedAt:  time.Now(),
		})
	})
}

func decodeTableNumber(payload json.RawMessage) string {
	var evt struct {
		TableNumber string `json:"table_number"`
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		utils.ErrorLogger.Debugf("notification payload without table number: %v", err)
		return "?"
	}
	if evt.TableNumber == "" {
		return "?"
	}
	return evt.TableNumber
}
