package client

import (
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-client/utils"
)

// Nama event realtime yang dikirim server.
const (
	EventNewOrder    = "restaurant:new_order"
	EventOrderStatus = "restaurant:order_status"
	EventOrderReady  = "restaurant:order_ready"
	EventKOTUpdate   = "restaurant:kot_update"
	EventKOTPriority = "restaurant:kot_priority"
	EventKOTRecall   = "restaurant:kot_recall"
	EventWaiterCall  = "restaurant:waiter_call"
)

// wsMessage adalah bingkai pesan di websocket feed.
type wsMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSSubscriber menerima event realtime lewat websocket dan menyalurkannya ke
// handler per nama event. Koneksi putus akan dicoba ulang sampai Close
// dipanggil.
type WSSubscriber struct {
	wsURL     string
	authToken string

	mutex    sync.Mutex
	handlers map[string][]EventHandler
	conn     *websocket.Conn
	closed   bool
	done     chan struct{}
}

// NewWSSubscriber membuat subscriber untuk satu feed websocket.
func NewWSSubscriber(wsURL, authToken string) *WSSubscriber {
	return &WSSubscriber{
		wsURL:     wsURL,
		authToken: authToken,
		handlers:  make(map[string][]EventHandler),
		done:      make(chan struct{}),
	}
}

// Subscribe mendaftarkan handler untuk satu nama event. Boleh dipanggil
// sebelum atau sesudah Start.
func (s *WSSubscriber) Subscribe(eventName string, handler EventHandler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.handlers[eventName] = append(s.handlers[eventName], handler)
}

// Start membuka koneksi dan menjalankan read loop di goroutine sendiri.
func (s *WSSubscriber) Start() {
	go s.run()
}

func (s *WSSubscriber) run() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		if err := s.connectAndRead(); err != nil {
			utils.ErrorLogger.Errorf("websocket feed disconnected: %v", err)
		}

		// Tunggu sebelum reconnect supaya tidak membanjiri server
		select {
		case <-s.done:
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (s *WSSubscriber) connectAndRead() error {
	dialURL := s.wsURL
	if s.authToken != "" {
		parsed, err := url.Parse(s.wsURL)
		if err != nil {
			return err
		}
		query := parsed.Query()
		query.Set("token", s.authToken)
		parsed.RawQuery = query.Encode()
		dialURL = parsed.String()
	}

	conn, _, err := websocket.DefaultDialer.Dial(dialURL, nil)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mutex.Unlock()

	utils.InfoLogger.Infof("websocket feed connected: %s", s.wsURL)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return err
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			utils.ErrorLogger.Errorf("invalid event frame: %v", err)
			continue
		}

		s.dispatch(msg.Event, msg.Data)
	}
}

func (s *WSSubscriber) dispatch(eventName string, payload json.RawMessage) {
	s.mutex.Lock()
	handlers := append([]EventHandler(nil), s.handlers[eventName]...)
	s.mutex.Unlock()

	for _, handler := range handlers {
		handler(payload)
	}
}

// Close menghentikan read loop dan menutup koneksi yang sedang aktif.
func (s *WSSubscriber) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	if s.conn != nil {
		s.conn.Close()
	}
}
