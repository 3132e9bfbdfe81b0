package storage

// Store adalah penyimpanan key/value lokal yang bertahan melewati reload
// session. Dipakai untuk persistensi keranjang; tidak butuh transaksi.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}
