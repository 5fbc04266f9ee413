package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

const revisionColumns = "revision_id, schema_id, parent_id, content, summary, created_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func hydrateRevision(row rowScanner) (*types.Revision, error) {
	var (
		r         types.Revision
		schemaID  string
		parentID  sql.NullString
		createdAt string
	)
	if err := row.Scan(&r.RevisionID, &schemaID, &parentID, &r.Content, &r.Summary, &createdAt); err != nil {
		return nil, err
	}
	r.SchemaID = types.SchemaID(schemaID)
	r.ParentID = parentID.String
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at of revision %s: %w", r.RevisionID, err)
	}
	r.CreatedAt = ts
	return &r, nil
}

// checkAttached must be called with b.mu held.
func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// GetRevision returns the revision with the given ID.
func (b *Backend) GetRevision(revisionID string) (*types.Revision, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if revisionID == "" {
		return nil, types.ErrInvalidRevision
	}

	row := b.db.QueryRow("SELECT "+revisionColumns+" FROM revisions WHERE revision_id = ?", revisionID)
	r, err := hydrateRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("revision %s: %w", revisionID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting revision %s: %w", revisionID, err)
	}
	return r, nil
}

// GetContentText returns the persisted JSON of a revision.
func (b *Backend) GetContentText(revisionID string) (string, error) {
	r, err := b.GetRevision(revisionID)
	if err != nil {
		return "", err
	}
	return r.Content, nil
}

// GetParentRevision returns the revision preceding revisionID.
func (b *Backend) GetParentRevision(revisionID string) (*types.Revision, error) {
	r, err := b.GetRevision(revisionID)
	if err != nil {
		return nil, err
	}
	if r.ParentID == "" {
		return nil, types.ErrNoParentRevision
	}
	return b.GetRevision(r.ParentID)
}

// Latest returns the current revision of a schema.
func (b *Backend) Latest(id types.SchemaID) (*types.Revision, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	r, err := b.latestLocked(b.db, id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (b *Backend) latestLocked(q queryer, id types.SchemaID) (*types.Revision, error) {
	row := q.QueryRow(
		"SELECT "+revisionColumns+" FROM revisions WHERE schema_id = ? ORDER BY seq DESC LIMIT 1",
		id.String(),
	)
	r, err := hydrateRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schema %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting latest revision of %s: %w", id, err)
	}
	return r, nil
}

// History returns all revisions of a schema, oldest first.
func (b *Backend) History(id types.SchemaID) ([]*types.Revision, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query("SELECT "+revisionColumns+" FROM revisions WHERE schema_id = ? ORDER BY seq", id.String())
	if err != nil {
		return nil, fmt.Errorf("querying history of %s: %w", id, err)
	}
	defer rows.Close()

	var out []*types.Revision
	for rows.Next() {
		r, err := hydrateRevision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history of %s: %w", id, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("schema %s: %w", id, types.ErrNotFound)
	}
	return out, nil
}

// ListSchemas returns the IDs of all stored schemas, ordered by prefix and
// number.
func (b *Backend) ListSchemas() ([]types.SchemaID, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT DISTINCT schema_id FROM revisions ORDER BY substr(schema_id, 1, 1), CAST(substr(schema_id, 2) AS INTEGER)",
	)
	if err != nil {
		return nil, fmt.Errorf("listing schemas: %w", err)
	}
	defer rows.Close()

	var out []types.SchemaID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, types.SchemaID(id))
	}
	return out, rows.Err()
}

// Save appends a revision after checking that parentID is the schema's
// latest revision. An empty parentID creates the schema.
func (b *Backend) Save(id types.SchemaID, parentID, content, summary string) (*types.Revision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidSchemaID
	}

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	latest, err := b.latestLocked(tx, id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		if parentID != "" {
			return nil, err
		}
	case err != nil:
		return nil, err
	case parentID == "":
		return nil, fmt.Errorf("schema %s: %w", id, types.ErrAlreadyExists)
	case latest.RevisionID != parentID:
		return nil, fmt.Errorf("schema %s: expected parent %s, latest is %s: %w",
			id, parentID, latest.RevisionID, types.ErrStaleRevision)
	}
	if latest != nil {
		if err := tx.QueryRow("SELECT seq FROM revisions WHERE revision_id = ?", latest.RevisionID).Scan(&seq); err != nil {
			return nil, fmt.Errorf("reading revision number: %w", err)
		}
	}

	rev := &types.Revision{
		RevisionID: generateUUID(),
		SchemaID:   id,
		ParentID:   parentID,
		Content:    content,
		Summary:    summary,
		CreatedAt:  time.Now().UTC(),
	}
	record := revisionJSON{
		RevisionID: rev.RevisionID,
		SchemaID:   id.String(),
		Seq:        seq + 1,
		Content:    content,
		Summary:    summary,
		CreatedAt:  rev.CreatedAt.Format(time.RFC3339Nano),
	}
	if parentID != "" {
		record.ParentID = &parentID
	}

	_, err = tx.Exec(
		"INSERT INTO revisions (revision_id, schema_id, parent_id, seq, content, summary, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		record.RevisionID, record.SchemaID, record.ParentID, record.Seq, record.Content, record.Summary, record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing revision: %w", err)
	}

	if err := appendJSONL(filepath.Join(b.dataDir, revisionsJSONL), record); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", revisionsJSONL, err)
	}

	b.logger.Debug("saved revision",
		zap.String("schema_id", id.String()),
		zap.String("revision_id", rev.RevisionID),
		zap.String("parent_id", parentID),
		zap.Int64("seq", record.Seq))
	return rev, nil
}

// Export writes every revision, ordered by schema and revision number, to
// path as JSONL. The file is replaced atomically.
func (b *Backend) Export(path string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return 0, err
	}

	rows, err := b.db.Query("SELECT revision_id, schema_id, parent_id, seq, content, summary, created_at FROM revisions ORDER BY schema_id, seq")
	if err != nil {
		return 0, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var (
			rec      revisionJSON
			parentID sql.NullString
		)
		if err := rows.Scan(&rec.RevisionID, &rec.SchemaID, &parentID, &rec.Seq, &rec.Content, &rec.Summary, &rec.CreatedAt); err != nil {
			return 0, err
		}
		if parentID.Valid {
			rec.ParentID = &parentID.String
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling revision %s: %w", rec.RevisionID, err)
		}
		records = append(records, line)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
