package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *GormStore {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	store, err := NewGormStore(db)
	assert.NoError(t, err)
	return store
}

func TestGormStoreSetGet(t *testing.T) {
	store := setupTestStore(t)

	// Key yang belum ada
	_, found, err := store.Get("cart:T-01")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Set("cart:T-01", `[{"local_id":"abc"}]`))

	value, found, err := store.Get("cart:T-01")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"local_id":"abc"}]`, value)
}

func TestGormStoreOverwrite(t *testing.T) {
	store := setupTestStore(t)

	assert.NoError(t, store.Set("cart:T-02", "first"))
	assert.NoError(t, store.Set("cart:T-02", "second"))

	value, found, err := store.Get("cart:T-02")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", value)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get("missing")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Set("k", "v"))
	value, found, err := store.Get("k")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}
