package client

import "encoding/json"

// EventHandler menerima payload mentah satu event realtime. Handler tidak
// boleh menganggap payload lengkap atau terkini; payload hanya petunjuk
// untuk refetch.
type EventHandler func(payload json.RawMessage)

// Subscriber adalah antarmuka event push dari server. Pengiriman best-effort
// (bisa hilang atau dobel), jadi semua handler harus idempotent.
type Subscriber interface {
	Subscribe(eventName string, handler EventHandler)
}
