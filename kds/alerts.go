package kds

import (
	"time"

	"github.com/yeremiapane/restaurant-client/models"
)

// AlertLevel menandai seberapa lama sebuah tiket sudah menunggu.
type AlertLevel string

const (
	AlertNormal  AlertLevel = "Normal"
	AlertWarning AlertLevel = "Warning"
	AlertDanger  AlertLevel = "Danger"
)

// ComputeAlertLevel menghitung level alert sebuah tiket pada waktu now.
// Murni: Danger kalau umur tiket melewati threshold, Warning kalau melewati
// setengahnya. Umur negatif (clock skew) dianggap nol.
func ComputeAlertLevel(ticket *models.KitchenOrderTicket, now time.Time, threshold time.Duration) AlertLevel {
	elapsed := ticket.ElapsedSeconds(now)
	thresholdSecs := int64(threshold / time.Second)

	switch {
	case elapsed > thresholdSecs:
		return AlertDanger
	case elapsed > thresholdSecs/2:
		return AlertWarning
	default:
		return AlertNormal
	}
}

// AlertFor menghitung level alert memakai threshold board.
func (b *Board) AlertFor(ticket *models.KitchenOrderTicket, now time.Time) AlertLevel {
	return ComputeAlertLevel(ticket, now, b.alertThreshold)
}

// TicketAlert memasangkan tiket dengan level alert-nya untuk redisplay.
type TicketAlert struct {
	Ticket models.KitchenOrderTicket
	Level  AlertLevel
}

// Alerts menghitung level alert seluruh tiket aktif pada waktu now. Tidak
// pernah memicu network call; aman dipanggil tiap detik dari timer tampilan.
func (b *Board) Alerts(now time.Time) []TicketAlert {
	tickets := b.Tickets()
	alerts := make([]TicketAlert, 0, len(tickets))
	for i := range tickets {
		alerts = append(alerts, TicketAlert{
			Ticket: tickets[i],
			Level:  ComputeAlertLevel(&tickets[i], now, b.alertThreshold),
		})
	}
	return alerts
}
