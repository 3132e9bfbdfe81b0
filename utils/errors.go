package utils

import "fmt"

// ValidationError menandakan prasyarat lokal yang dilanggar (misal qty < 1
// atau modifier wajib belum dipilih). Tidak pernah dikirim ke network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// SubmissionError menandakan server menolak submit order, atau submit gagal
// karena masalah jaringan. Keranjang dibiarkan utuh saat error ini muncul.
type SubmissionError struct {
	Reason    string
	Transport bool
}

func (e *SubmissionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("order submission failed: %s", e.Reason)
	}
	return "order submission failed: network error, please try again"
}

// ActionError menandakan aksi board (start/ready/bump/priority) ditolak
// server atau gagal di jaringan. State lokal tidak diubah; refresh berikutnya
// yang menyelaraskan tampilan.
type ActionError struct {
	Action    string
	TicketID  string
	Reason    string
	Transport bool
}

func (e *ActionError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "network error"
	}
	return fmt.Sprintf("action %s on ticket %s failed: %s", e.Action, e.TicketID, reason)
}

// TransportError menandakan call interface tidak bisa menyelesaikan request
// sama sekali (bukan penolakan dari server).
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("call %s failed: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StorageCorruptionError menandakan data keranjang tersimpan gagal di-parse.
// Selalu dipulihkan dengan keranjang kosong, tidak pernah fatal.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("stored data for %s is corrupt: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error {
	return e.Err
}
