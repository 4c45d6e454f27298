package api

import (
	"time"

	"github.com/ssargent/memod/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// MemoRequest is the body of create and update requests.
// Both fields must be present; content may be empty, title may not.
type MemoRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// MemoListResponse is returned by GET /memos
type MemoListResponse struct {
	Memos []store.Record `json:"memos"`
	Count int            `json:"count"`
}

// DeleteResponse acknowledges a delete
type DeleteResponse struct {
	Message string `json:"message"`
	ID      uint64 `json:"id"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	store.Stats
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr            string        // host:port to listen on
	APIKey          string        // Client API key checked against X-API-Key
	RequireAuth     bool          // Whether /api/v1 requires the API key
	MetricsEnabled  bool          // Serve /metrics and record Prometheus metrics
	MetricsInterval time.Duration // How often store gauges are refreshed
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// IMemoStore defines the record store operations used by the handlers
type IMemoStore interface {
	Create(title, content string) store.Record
	List() []store.Record
	Get(id uint64) (store.Record, error)
	Update(id uint64, title, content string) (store.Record, error)
	Delete(id uint64) error

	// Diagnostics
	Stats() store.Stats
	InstanceID() string
}
