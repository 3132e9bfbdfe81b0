package kds

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	m.Run()
}

// fakeKitchen meniru sisi server dapur: menyimpan listing aktif dan
// memutasinya saat menerima aksi, persis seperti server sungguhan.
type fakeKitchen struct {
	mutex   sync.Mutex
	listing []models.KitchenOrderTicket
	fail    map[string]string // method -> pesan penolakan
	err     error
	calls   []string
}

func newFakeKitchen(tickets ...models.KitchenOrderTicket) *fakeKitchen {
	return &fakeKitchen{
		listing: tickets,
		fail:    map[string]string{},
	}
}

func (f *fakeKitchen) Call(method string, args map[string]interface{}) (*client.Result, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls = append(f.calls, method)
	if f.err != nil {
		return nil, f.err
	}
	if message, rejected := f.fail[method]; rejected {
		return &client.Result{Success: false, Message: message}, nil
	}

	switch method {
	case client.MethodGetKitchenOrders:
		data, _ := json.Marshal(f.listing)
		return &client.Result{Success: true, Data: data}, nil

	case client.MethodUpdateOrderStatus:
		id := args["kot_id"].(string)
		status := args["status"].(string)
		for i := range f.listing {
			if f.listing[i].ID == id {
				f.listing[i].Status = status
			}
		}
		return &client.Result{Success: true, Message: "Status updated"}, nil

	case client.MethodBumpOrder:
		id := args["kot_id"].(string)
		kept := f.listing[:0]
		for _, ticket := range f.listing {
			if ticket.ID != id {
				kept = append(kept, ticket)
			}
		}
		f.listing = kept
		return &client.Result{Success: true, Message: "Order bumped"}, nil

	case client.MethodSetPriority:
		id := args["kot_id"].(string)
		priority := args["priority"].(string)
		for i := range f.listing {
			if f.listing[i].ID == id {
				f.listing[i].Priority = priority
			}
		}
		return &client.Result{Success: true, Message: "Priority updated"}, nil

	case client.MethodRecallOrder:
		return &client.Result{Success: true, Message: "Order recalled"}, nil
	}

	return &client.Result{Success: true}, nil
}

func ticket(id, status string) models.KitchenOrderTicket {
	return models.KitchenOrderTicket{
		ID:        id,
		OrderID:   "ORD-" + id,
		OrderType: "Dine In",
		Status:    status,
		Priority:  models.PriorityNormal,
		CreatedAt: time.Now(),
	}
}

func TestRefreshReplacesActiveSet(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusNew), ticket("B", models.TicketStatusPreparing))
	board := NewBoard(server, Scope{Station: "Main Kitchen"}, 0)

	assert.NoError(t, board.Refresh())
	assert.Len(t, board.Tickets(), 2)

	// Tiket yang hilang dari listing berikutnya ikut hilang dari board
	server.mutex.Lock()
	server.listing = []models.KitchenOrderTicket{ticket("C", models.TicketStatusNew)}
	server.mutex.Unlock()

	assert.NoError(t, board.Refresh())
	tickets := board.Tickets()
	assert.Len(t, tickets, 1)
	assert.Equal(t, "C", tickets[0].ID)
}

func TestRefreshFailureKeepsLastState(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusNew))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	server.mutex.Lock()
	server.err = errors.New("connection reset")
	server.mutex.Unlock()

	assert.Error(t, board.Refresh())
	assert.Len(t, board.Tickets(), 1)
}

// blockingCaller menahan tiap respons listing sampai test melepasnya, untuk
// mensimulasikan respons refresh yang datang tidak berurutan.
type blockingCaller struct {
	mutex   sync.Mutex
	started chan int
	gates   []chan *client.Result
}

func (c *blockingCaller) Call(method string, args map[string]interface{}) (*client.Result, error) {
	c.mutex.Lock()
	index := len(c.gates)
	gate := make(chan *client.Result, 1)
	c.gates = append(c.gates, gate)
	c.mutex.Unlock()

	c.started <- index
	return <-gate, nil
}

func listingResult(ids ...string) *client.Result {
	tickets := make([]models.KitchenOrderTicket, 0, len(ids))
	for _, id := range ids {
		tickets = append(tickets, ticket(id, models.TicketStatusNew))
	}
	data, _ := json.Marshal(tickets)
	return &client.Result{Success: true, Data: data}
}

func TestStaleRefreshDiscarded(t *testing.T) {
	caller := &blockingCaller{started: make(chan int, 3)}
	board := NewBoard(caller, Scope{}, 0)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = board.Refresh()
		}()
		// Pastikan refresh ke-i sudah memegang nomor urutnya sebelum
		// refresh berikutnya diterbitkan
		<-caller.started
	}

	// Respons datang dengan urutan 3, 1, 2
	caller.gates[2] <- listingResult("from-third")
	caller.gates[0] <- listingResult("from-first")
	caller.gates[1] <- listingResult("from-second")
	wg.Wait()

	// Hanya respons refresh terakhir yang diterapkan
	tickets := board.Tickets()
	assert.Len(t, tickets, 1)
	assert.Equal(t, "from-third", tickets[0].ID)
}

func TestStartPreparingAndMarkReady(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusNew))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	assert.NoError(t, board.StartPreparing("A"))
	got, found := board.Ticket("A")
	assert.True(t, found)
	assert.Equal(t, models.TicketStatusPreparing, got.Status)

	assert.NoError(t, board.MarkReady("A"))
	got, _ = board.Ticket("A")
	assert.Equal(t, models.TicketStatusReady, got.Status)
}

func TestActionPreconditions(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusPreparing))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())
	callsBefore := len(server.calls)

	var actionErr *utils.ActionError

	// StartPreparing butuh status New
	err := board.StartPreparing("A")
	assert.ErrorAs(t, err, &actionErr)

	// Bump butuh status Ready
	err = board.Bump("A")
	assert.ErrorAs(t, err, &actionErr)

	// Tiket yang tidak ada di board
	err = board.MarkReady("ghost")
	assert.ErrorAs(t, err, &actionErr)

	// Prasyarat gagal tidak menyentuh network sama sekali
	assert.Equal(t, callsBefore, len(server.calls))
}

func TestActionFailureLeavesBoardUnchanged(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusNew))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	server.mutex.Lock()
	server.fail[client.MethodUpdateOrderStatus] = "KOT is locked by another station"
	server.mutex.Unlock()

	err := board.StartPreparing("A")
	var actionErr *utils.ActionError
	assert.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "start_preparing", actionErr.Action)
	assert.Contains(t, actionErr.Reason, "locked")

	// Tampilan tetap state server terakhir yang terkonfirmasi
	got, _ := board.Ticket("A")
	assert.Equal(t, models.TicketStatusNew, got.Status)
}

func TestBumpRemovesTicket(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusReady), ticket("B", models.TicketStatusPreparing))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	assert.NoError(t, board.Bump("A"))

	// Refresh setelah bump hanya memuat B
	tickets := board.Tickets()
	assert.Len(t, tickets, 1)
	assert.Equal(t, "B", tickets[0].ID)
}

func TestSetPriority(t *testing.T) {
	server := newFakeKitchen(ticket("A", models.TicketStatusPreparing))
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	// Rush boleh dari status apapun
	assert.NoError(t, board.SetPriority("A", models.PriorityRush))
	got, _ := board.Ticket("A")
	assert.Equal(t, models.PriorityRush, got.Priority)

	var actionErr *utils.ActionError
	err := board.SetPriority("A", "Urgent")
	assert.ErrorAs(t, err, &actionErr)
}

func TestSummaryCounts(t *testing.T) {
	server := newFakeKitchen(
		ticket("A", models.TicketStatusNew),
		ticket("B", models.TicketStatusNew),
		ticket("C", models.TicketStatusPreparing),
		ticket("D", models.TicketStatusReady),
	)
	board := NewBoard(server, Scope{}, 0)
	assert.NoError(t, board.Refresh())

	counts := board.Summary()
	assert.Equal(t, 2, counts.New)
	assert.Equal(t, 1, counts.Preparing)
	assert.Equal(t, 1, counts.Ready)
}

// fakeSubscriber mengantarkan event langsung ke handler terdaftar.
type fakeSubscriber struct {
	handlers map[string][]client.EventHandler
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{handlers: map[string][]client.EventHandler{}}
}

func (f *fakeSubscriber) Subscribe(eventName string, handler client.EventHandler) {
	f.handlers[eventName] = append(f.handlers[eventName], handler)
}

func (f *fakeSubscriber) emit(eventName string, payload string) {
	for _, handler := range f.handlers[eventName] {
		handler(json.RawMessage(payload))
	}
}

func TestEventTriggersRefetch(t *testing.T) {
	server := newFakeKitchen()
	board := NewBoard(server, Scope{}, 0)

	sub := newFakeSubscriber()
	board.BindEvents(sub)

	// Payload event hanya petunjuk refetch; isi board datang dari listing
	server.mutex.Lock()
	server.listing = []models.KitchenOrderTicket{ticket("X", models.TicketStatusNew)}
	server.mutex.Unlock()

	sub.emit(client.EventKOTUpdate, `{"kot_id":"bogus","status":"Ready"}`)

	assert.Eventually(t, func() bool {
		tickets := board.Tickets()
		return len(tickets) == 1 && tickets[0].ID == "X"
	}, time.Second, 10*time.Millisecond)
}

func TestFetchStats(t *testing.T) {
	board := NewBoard(&statsCaller{}, Scope{Station: "Grill"}, 0)
	stats, err := board.FetchStats()
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.New)
	assert.Equal(t, 240, stats.AvgPrepTime)
}

type statsCaller struct{}

func (s *statsCaller) Call(method string, args map[string]interface{}) (*client.Result, error) {
	return &client.Result{
		Success: true,
		Data:    json.RawMessage(`{"new":3,"preparing":1,"ready":2,"total_active":6,"avg_preparation_time":240}`),
	}, nil
}
