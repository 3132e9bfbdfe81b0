package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/config"
	"github.com/yeremiapane/restaurant-client/desk"
	"github.com/yeremiapane/restaurant-client/kds"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/services"
	"github.com/yeremiapane/restaurant-client/storage"
	"github.com/yeremiapane/restaurant-client/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

// main menjalankan satu session console KDS untuk station yang dikonfigurasi:
// refresh berkala + event push dari server, ringkasan board dicetak ke log.
func main() {
	cfg := config.Load()

	if cfg.AuthToken != "" {
		claims, err := client.ParseSessionToken(cfg.AuthToken)
		if err != nil {
			utils.ErrorLogger.Fatalf("cannot read session token: %v", err)
		}
		if !claims.HasKitchenAccess() {
			utils.ErrorLogger.Fatalf("role %s cannot open the kitchen display", claims.Role)
		}
		if claims.ExpiresWithin(time.Minute) {
			utils.InfoLogger.Warn("session token is about to expire, please login again")
		}
	}

	// Storage lokal dipakai session customer untuk keranjang; di console KDS
	// cukup disiapkan supaya satu binary bisa melayani dua mode.
	if _, err := openLocalStore(cfg.CartDBPath); err != nil {
		utils.ErrorLogger.Errorf("local store unavailable, continuing without it: %v", err)
	}

	caller := client.NewHTTPCaller(cfg.ServerURL, cfg.AuthToken)

	board := kds.NewBoard(caller, kds.Scope{
		Station: cfg.Station,
		Branch:  cfg.Branch,
	}, cfg.AlertThreshold)

	if err := board.Refresh(); err != nil {
		utils.ErrorLogger.Errorf("initial refresh failed, board starts empty: %v", err)
	}

	notifs := desk.NewNotificationCenter(50)
	notifs.OnToast = func(n models.Notification) {
		utils.InfoLogger.Infof("[%s] %s", n.Kind, n.Message)
	}

	feed := client.NewWSSubscriber(cfg.WSURL, cfg.AuthToken)
	board.BindEvents(feed)
	notifs.BindEvents(feed)
	feed.Start()
	defer feed.Close()

	var lastDanger int
	monitor := services.NewBoardMonitor(board, cfg.RefreshInterval, func(alerts []kds.TicketAlert) {
		danger := 0
		for _, alert := range alerts {
			if alert.Level == kds.AlertDanger {
				danger++
			}
		}
		// Hanya log saat jumlah tiket kritis berubah supaya tidak berisik
		if danger != lastDanger {
			summary := board.Summary()
			utils.InfoLogger.Infof("board: %d new, %d preparing, %d ready (%d overdue)",
				summary.New, summary.Preparing, summary.Ready, danger)
			lastDanger = danger
		}
	})
	monitor.Start()
	defer monitor.Stop()

	utils.InfoLogger.Infof("kitchen display running for station %q branch %q", cfg.Station, cfg.Branch)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Info("shutting down kitchen display")
}

func openLocalStore(path string) (storage.Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return storage.NewGormStore(db)
}
