// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/ssargent/memod/pkg/logger"
	"github.com/ssargent/memod/pkg/store"
)

// StoreFactory creates record stores
type StoreFactory interface {
	// CreateStore creates a new, empty record store
	CreateStore() *store.RecordStore
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves st until ctx is cancelled
	StartServer(ctx context.Context, st IMemoStore, config ServerConfig, lggr logger.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
