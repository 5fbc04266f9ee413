// Package sqlite provides the public API for the SQLite revision store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/entityschema/internal/sqlite"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// NewBackend creates a new SQLite revision store. A nil logger disables
// logging. The store is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".entityschema-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.RevisionStore {
	return sqlite.NewBackend(logger)
}
