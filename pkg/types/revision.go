package types

import (
	"errors"
	"time"
)

// Revision is one immutable version of a schema page. Content holds the
// persisted schema JSON.
type Revision struct {
	RevisionID string    `json:"revision_id"` // UUID v7, generated on save.
	SchemaID   SchemaID  `json:"schema_id"`
	ParentID   string    `json:"parent_id"` // Empty for the first revision.
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// RevisionStore persists schema revisions. Callers attach to a backend,
// read and append revisions, and detach when done.
type RevisionStore interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// GetRevision returns the revision with the given ID.
	// Returns ErrNotFound if no such revision exists.
	GetRevision(revisionID string) (*Revision, error)

	// GetContentText returns the persisted JSON of a revision.
	GetContentText(revisionID string) (string, error)

	// GetParentRevision returns the revision preceding revisionID.
	// Returns ErrNoParentRevision for the first revision of a schema.
	GetParentRevision(revisionID string) (*Revision, error)

	// Latest returns the current revision of a schema.
	// Returns ErrNotFound if the schema does not exist.
	Latest(id SchemaID) (*Revision, error)

	// History returns all revisions of a schema, oldest first.
	History(id SchemaID) ([]*Revision, error)

	// ListSchemas returns the IDs of all stored schemas in ascending order.
	ListSchemas() ([]SchemaID, error)

	// Save appends a revision. parentID must be the schema's current latest
	// revision ID, or empty when creating the schema; otherwise Save returns
	// ErrStaleRevision (or ErrAlreadyExists for a create).
	Save(id SchemaID, parentID, content, summary string) (*Revision, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Revision errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("schema already exists")
	ErrStaleRevision    = errors.New("parent revision is not the latest revision")
	ErrNoParentRevision = errors.New("revision has no parent")
	ErrInvalidRevision  = errors.New("invalid revision ID")
)
