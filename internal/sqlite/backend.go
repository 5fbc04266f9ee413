package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// dbFileName is the SQLite query database inside DataDir. It is rebuilt from
// revisions.jsonl on every Attach.
const dbFileName = "entityschema.db"

var _ types.RevisionStore = (*Backend)(nil)

// Backend implements types.RevisionStore using SQLite as the query engine
// and an append-only JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	logger   *zap.Logger
}

// NewBackend creates a new SQLite backend instance. A nil logger disables
// logging. The backend is not attached; call Attach with a Config.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger.Named("sqlite")}
}

// Attach creates DataDir if needed, builds a fresh SQLite database, and
// loads revisions.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	// The database is a cache of the JSONL file; start from scratch.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// One connection keeps writes serialized inside SQLite as well.
	db.SetMaxOpenConns(1)

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := ensureJSONL(filepath.Join(dataDir, revisionsJSONL)); err != nil {
		db.Close()
		return err
	}

	loaded, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.attached = true

	b.logger.Debug("attached", zap.String("data_dir", dataDir), zap.Int("revisions", loaded))
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.logger.Debug("detached", zap.String("data_dir", b.dataDir))
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// generateUUID generates a new UUID v7 for revision IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
