package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-client/kds"
	"github.com/yeremiapane/restaurant-client/utils"
)

// BoardMonitor menjalankan dua timer untuk satu board: refresh berkala ke
// server dan tick redisplay 1 detik yang hanya menghitung ulang level alert
// (tanpa network call).
type BoardMonitor struct {
	board           *kds.Board
	refreshInterval time.Duration
	redisplayTick   time.Duration
	onRedisplay     func([]kds.TicketAlert)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewBoardMonitor membuat monitor. Interval <= 0 memakai default 5 detik.
// onRedisplay boleh nil kalau caller tidak butuh tick tampilan.
func NewBoardMonitor(board *kds.Board, refreshInterval time.Duration, onRedisplay func([]kds.TicketAlert)) *BoardMonitor {
	if refreshInterval <= 0 {
		refreshInterval = 5 * time.Second
	}
	return &BoardMonitor{
		board:           board,
		refreshInterval: refreshInterval,
		redisplayTick:   time.Second,
		onRedisplay:     onRedisplay,
		stop:            make(chan struct{}),
	}
}

// Start menjalankan kedua loop timer di goroutine masing-masing.
func (bm *BoardMonitor) Start() {
	go bm.refreshLoop()
	if bm.onRedisplay != nil {
		go bm.redisplayLoop()
	}
	utils.InfoLogger.Info("board monitor started")
}

func (bm *BoardMonitor) refreshLoop() {
	ticker := time.NewTicker(bm.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-bm.stop:
			return
		case <-ticker.C:
			if err := bm.board.Refresh(); err != nil {
				// Board mempertahankan state terakhir; tick berikutnya
				// mencoba lagi.
				utils.ErrorLogger.Errorf("scheduled refresh failed: %v", err)
			}
		}
	}
}

func (bm *BoardMonitor) redisplayLoop() {
	ticker := time.NewTicker(bm.redisplayTick)
	defer ticker.Stop()

	for {
		select {
		case <-bm.stop:
			return
		case now := <-ticker.C:
			bm.onRedisplay(bm.board.Alerts(now))
		}
	}
}

// Stop menghentikan kedua loop. Aman dipanggil lebih dari sekali.
func (bm *BoardMonitor) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stop)
	})
}
