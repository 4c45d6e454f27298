// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/ssargent/memod/pkg/logger"
	"github.com/ssargent/memod/pkg/store"
)

// DefaultStoreFactory is the default implementation of StoreFactory
type DefaultStoreFactory struct{}

// NewStoreFactory creates a new store factory
func NewStoreFactory() StoreFactory {
	return &DefaultStoreFactory{}
}

// CreateStore creates a new, empty record store
func (f *DefaultStoreFactory) CreateStore() *store.RecordStore {
	return store.NewRecordStore(store.RecordStoreConfig{})
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(ctx context.Context, st IMemoStore, config ServerConfig, lggr logger.Logger) error {
	return StartServer(ctx, st, config, lggr)
}
