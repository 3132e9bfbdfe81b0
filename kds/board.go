package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

// Scope membatasi tiket yang ditampilkan satu board ke station/branch
// tertentu.
type Scope struct {
	Station string
	Branch  string
}

// Board memegang daftar tiket dapur aktif untuk satu station. Isi board
// selalu hasil listing server (full replace saat refresh); aksi staff tidak
// pernah memutasi tiket secara optimistis.
type Board struct {
	mutex sync.Mutex

	caller         client.Caller
	scope          Scope
	alertThreshold time.Duration

	tickets []models.KitchenOrderTicket

	// refreshSeq menandai refresh terakhir yang diterbitkan. Respons untuk
	// seq yang lebih lama dibuang (last-response-wins).
	refreshSeq uint64
}

// NewBoard membuat board untuk satu scope. Threshold <= 0 memakai default
// 10 menit.
func NewBoard(caller client.Caller, scope Scope, alertThreshold time.Duration) *Board {
	if alertThreshold <= 0 {
		alertThreshold = 10 * time.Minute
	}
	return &Board{
		caller:         caller,
		scope:          scope,
		alertThreshold: alertThreshold,
	}
}

// Refresh mengganti seluruh daftar tiket dengan listing server terbaru.
// Refresh yang tumpang tindih tidak dijamin selesai berurutan; respons yang
// bukan milik refresh terakhir dibuang tanpa diterapkan.
func (b *Board) Refresh() error {
	b.mutex.Lock()
	b.refreshSeq++
	seq := b.refreshSeq
	b.mutex.Unlock()

	args := map[string]interface{}{}
	if b.scope.Station != "" {
		args["station"] = b.scope.Station
	}
	if b.scope.Branch != "" {
		args["branch"] = b.scope.Branch
	}

	result, err := b.caller.Call(client.MethodGetKitchenOrders, args)
	if err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if seq != b.refreshSeq {
		utils.InfoLogger.Debugf("discarding stale kitchen refresh (seq %d, latest %d)", seq, b.refreshSeq)
		return nil
	}

	if !result.Success {
		// Listing gagal: pertahankan state lama, refresh berikutnya yang
		// memulihkan.
		utils.ErrorLogger.Errorf("kitchen refresh rejected: %s", result.Message)
		return &utils.ActionError{Action: "refresh", Reason: result.Message}
	}

	var tickets []models.KitchenOrderTicket
	if err := result.DecodeData(&tickets); err != nil {
		utils.ErrorLogger.Errorf("invalid kitchen listing: %v", err)
		return &utils.ActionError{Action: "refresh", Reason: "invalid listing payload"}
	}

	b.tickets = tickets
	return nil
}

// Tickets mengembalikan salinan daftar tiket aktif.
func (b *Board) Tickets() []models.KitchenOrderTicket {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]models.KitchenOrderTicket(nil), b.tickets...)
}

// Ticket mencari satu tiket aktif berdasarkan ID.
func (b *Board) Ticket(ticketID string) (*models.KitchenOrderTicket, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.findLocked(ticketID)
}

func (b *Board) findLocked(ticketID string) (*models.KitchenOrderTicket, bool) {
	for i := range b.tickets {
		if b.tickets[i].ID == ticketID {
			copied := b.tickets[i]
			return &copied, true
		}
	}
	return nil, false
}

// requireStatus memeriksa prasyarat lokal sebuah aksi. Ini hanya penentu
// tombol mana yang valid ditekan; server tetap pemutus akhir sah-tidaknya
// transisi.
func (b *Board) requireStatus(action, ticketID, wantStatus string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ticket, found := b.findLocked(ticketID)
	if !found {
		return &utils.ActionError{Action: action, TicketID: ticketID, Reason: "ticket is not on the board"}
	}
	if ticket.Status != wantStatus {
		return &utils.ActionError{
			Action:   action,
			TicketID: ticketID,
			Reason:   "ticket is " + ticket.Status + ", expected " + wantStatus,
		}
	}
	return nil
}

// doAction menjalankan satu call aksi dan me-refresh board saat sukses.
// Kegagalan tidak mengubah state lokal sama sekali.
func (b *Board) doAction(action, ticketID, method string, args map[string]interface{}) error {
	result, err := b.caller.Call(method, args)
	if err != nil {
		return &utils.ActionError{Action: action, TicketID: ticketID, Transport: true}
	}
	if !result.Success {
		return &utils.ActionError{Action: action, TicketID: ticketID, Reason: result.Message}
	}

	// Tampilan hanya boleh berubah lewat listing server yang baru.
	if err := b.Refresh(); err != nil {
		utils.ErrorLogger.Errorf("refresh after %s failed: %v", action, err)
	}
	return nil
}

// StartPreparing meminta transisi tiket New -> Preparing.
func (b *Board) StartPreparing(ticketID string) error {
	if err := b.requireStatus("start_preparing", ticketID, models.TicketStatusNew); err != nil {
		return err
	}
	return b.doAction("start_preparing", ticketID, client.MethodUpdateOrderStatus, map[string]interface{}{
		"kot_id": ticketID,
		"status": models.TicketStatusPreparing,
	})
}

// MarkReady meminta transisi tiket Preparing -> Ready.
func (b *Board) MarkReady(ticketID string) error {
	if err := b.requireStatus("mark_ready", ticketID, models.TicketStatusPreparing); err != nil {
		return err
	}
	return b.doAction("mark_ready", ticketID, client.MethodUpdateOrderStatus, map[string]interface{}{
		"kot_id": ticketID,
		"status": models.TicketStatusReady,
	})
}

// Bump menandai tiket Ready sudah diantar; tiket hilang dari board karena
// listing server berikutnya tidak memuatnya lagi.
func (b *Board) Bump(ticketID string) error {
	if err := b.requireStatus("bump", ticketID, models.TicketStatusReady); err != nil {
		return err
	}
	return b.doAction("bump", ticketID, client.MethodBumpOrder, map[string]interface{}{
		"kot_id": ticketID,
	})
}

// Recall menarik kembali tiket yang terlanjur di-bump ke status Ready.
func (b *Board) Recall(ticketID string) error {
	return b.doAction("recall", ticketID, client.MethodRecallOrder, map[string]interface{}{
		"kot_id": ticketID,
	})
}

// SetPriority mengubah prioritas tiket. Boleh dari status apapun.
func (b *Board) SetPriority(ticketID, priority string) error {
	if priority != models.PriorityNormal && priority != models.PriorityRush {
		return &utils.ActionError{Action: "set_priority", TicketID: ticketID, Reason: "unknown priority " + priority}
	}
	if _, found := b.Ticket(ticketID); !found {
		return &utils.ActionError{Action: "set_priority", TicketID: ticketID, Reason: "ticket is not on the board"}
	}
	return b.doAction("set_priority", ticketID, client.MethodSetPriority, map[string]interface{}{
		"kot_id":   ticketID,
		"priority": priority,
	})
}

// SummaryCounts menghitung jumlah tiket per status. Murni terhadap state
// board saat ini.
type SummaryCounts struct {
	New       int `json:"new"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
}

func (b *Board) Summary() SummaryCounts {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var counts SummaryCounts
	for i := range b.tickets {
		switch b.tickets[i].Status {
		case models.TicketStatusNew:
			counts.New++
		case models.TicketStatusPreparing:
			counts.Preparing++
		case models.TicketStatusReady:
			counts.Ready++
		}
	}
	return counts
}

// KitchenStats adalah statistik dapur dari server (termasuk rata-rata waktu
// masak 24 jam terakhir).
type KitchenStats struct {
	New         int `json:"new"`
	Preparing   int `json:"preparing"`
	Ready       int `json:"ready"`
	TotalActive int `json:"total_active"`
	AvgPrepTime int `json:"avg_preparation_time"`
}

// FetchStats mengambil statistik dapur untuk scope board ini.
func (b *Board) FetchStats() (*KitchenStats, error) {
	args := map[string]interface{}{}
	if b.scope.Station != "" {
		args["station"] = b.scope.Station
	}
	if b.scope.Branch != "" {
		args["branch"] = b.scope.Branch
	}

	result, err := b.caller.Call(client.MethodGetKitchenStats, args)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.ActionError{Action: "stats", Reason: result.Message}
	}

	var stats KitchenStats
	if err := result.DecodeData(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BindEvents mendaftarkan handler event dapur. Payload event hanya dianggap
// sinyal untuk refetch, bukan sumber state baru, supaya board tidak melenceng
// gara-gara payload parsial atau basi.
func (b *Board) BindEvents(sub client.Subscriber) {
	refetch := func(json.RawMessage) {
		go func() {
			if err := b.Refresh(); err != nil {
				utils.ErrorLogger.Errorf("event-triggered refresh failed: %v", err)
			}
		}()
	}

	sub.Subscribe(client.EventNewOrder, refetch)
	sub.Subscribe(client.EventKOTUpdate, refetch)
	sub.Subscribe(client.EventKOTPriority, refetch)
	sub.Subscribe(client.EventKOTRecall, refetch)
}
