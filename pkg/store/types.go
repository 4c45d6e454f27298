package store

import (
	"time"
)

// Record is a single memo held by the RecordStore.
//
// ID and CreatedAt are assigned once by Create and never change afterwards.
type Record struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordStoreConfig holds configuration for the record store
type RecordStoreConfig struct {
	Clock func() time.Time // Source of creation timestamps (defaults to time.Now)
}

// Stats is a point-in-time view of the store counters
type Stats struct {
	InstanceID string    `json:"instance_id"`
	StartedAt  time.Time `json:"started_at"`
	Records    int       `json:"records"`
	NextID     uint64    `json:"next_id"`
	Creates    uint64    `json:"creates_total"`
	Updates    uint64    `json:"updates_total"`
	Deletes    uint64    `json:"deletes_total"`
}

// Errors
var (
	ErrNotFound = &StoreError{"record not found"}
)

// StoreError represents a record store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
