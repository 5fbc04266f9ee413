// Package editor implements the schema editing workflow on top of a
// revision store: creating and importing schemas, guarded edits, undo,
// restore, diffs and views.
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/entityschema/internal/merge"
	"github.com/mesh-intelligence/entityschema/internal/schema"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// Editor writes schema revisions through the encoder and merges concurrent
// edits with the update guard.
type Editor struct {
	store   types.RevisionStore
	encoder *schema.Encoder
	logger  *zap.Logger
}

// New returns an Editor over an attached store. A nil logger disables
// logging.
func New(store types.RevisionStore, encoder *schema.Encoder, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{store: store, encoder: encoder, logger: logger.Named("editor")}
}

// Create writes the first revision of a schema with one name badge and the
// schema text. An empty lang creates a schema without a badge.
func (e *Editor) Create(id types.SchemaID, lang string, badge types.NameBadge, schemaText string) (*types.Revision, error) {
	if err := e.ensureAbsent(id); err != nil {
		return nil, err
	}

	labels := map[string]string{}
	descriptions := map[string]string{}
	aliases := map[string][]string{}
	if lang != "" {
		labels[lang] = badge.Label
		descriptions[lang] = badge.Description
		aliases[lang] = badge.Aliases
	}

	content, err := e.encoder.Encode(id, labels, descriptions, aliases, schemaText)
	if err != nil {
		return nil, err
	}
	return e.store.Save(id, "", content, "Created schema")
}

// Import creates a schema from a decoded JSON document holding labels,
// descriptions, aliases and schemaText. An id in the document must match id.
func (e *Editor) Import(id types.SchemaID, raw map[string]any) (*types.Revision, error) {
	if docID, ok := raw["id"]; ok && docID != id.String() {
		return nil, fmt.Errorf("%w: document id %v does not match %s", types.ErrInvalidArgument, docID, id)
	}
	if err := e.ensureAbsent(id); err != nil {
		return nil, err
	}

	content, err := e.encoder.EncodeRaw(id, raw["labels"], raw["descriptions"], raw["aliases"], raw["schemaText"])
	if err != nil {
		return nil, err
	}
	return e.store.Save(id, "", content, "Imported schema")
}

func (e *Editor) ensureAbsent(id types.SchemaID) error {
	_, err := e.store.Latest(id)
	switch {
	case err == nil:
		return fmt.Errorf("schema %s: %w", id, types.ErrAlreadyExists)
	case errors.Is(err, types.ErrNotFound):
		return nil
	default:
		return err
	}
}

// SetNameBadge replaces the badge for lang. baseRevisionID names the
// revision the caller edited; empty means the latest. changed is false when
// the edit is a no-op, in which case the latest revision is returned.
func (e *Editor) SetNameBadge(id types.SchemaID, baseRevisionID, lang string, badge types.NameBadge) (rev *types.Revision, changed bool, err error) {
	if lang == "" {
		return nil, false, fmt.Errorf("%w: language code must not be empty", types.ErrInvalidArgument)
	}
	return e.guardedEdit(id, baseRevisionID, fmt.Sprintf("Changed %s name badge", lang),
		func(d *types.FullArraySchemaData) { d.SetNameBadge(lang, badge) })
}

// SetSchemaText replaces the schema text. See SetNameBadge for the meaning
// of baseRevisionID and changed.
func (e *Editor) SetSchemaText(id types.SchemaID, baseRevisionID, text string) (rev *types.Revision, changed bool, err error) {
	return e.guardedEdit(id, baseRevisionID, "Changed schema text",
		func(d *types.FullArraySchemaData) { d.SchemaText = text })
}

func (e *Editor) guardedEdit(id types.SchemaID, baseRevisionID, summary string, update merge.UpdateFunc) (*types.Revision, bool, error) {
	latest, err := e.store.Latest(id)
	if err != nil {
		return nil, false, err
	}
	base := latest
	if baseRevisionID != "" && baseRevisionID != latest.RevisionID {
		if base, err = e.revision(id, baseRevisionID); err != nil {
			return nil, false, err
		}
	}
	return e.write(id, base, latest, summary, update)
}

// Undo reverts the change made by undoRevisionID on top of the latest
// revision. The first revision of a schema cannot be undone.
func (e *Editor) Undo(id types.SchemaID, undoRevisionID string) (*types.Revision, bool, error) {
	undone, err := e.revision(id, undoRevisionID)
	if err != nil {
		return nil, false, err
	}
	previous, err := e.store.GetParentRevision(undone.RevisionID)
	if err != nil {
		return nil, false, err
	}
	previousData, err := schema.FullArray(previous.Content)
	if err != nil {
		return nil, false, err
	}
	latest, err := e.store.Latest(id)
	if err != nil {
		return nil, false, err
	}
	return e.write(id, undone, latest, fmt.Sprintf("Undid revision %s", undone.RevisionID),
		func(d *types.FullArraySchemaData) { *d = previousData })
}

// Restore writes the data of revisionID as a new revision.
func (e *Editor) Restore(id types.SchemaID, revisionID string) (*types.Revision, bool, error) {
	old, err := e.revision(id, revisionID)
	if err != nil {
		return nil, false, err
	}
	oldData, err := schema.FullArray(old.Content)
	if err != nil {
		return nil, false, err
	}
	latest, err := e.store.Latest(id)
	if err != nil {
		return nil, false, err
	}
	return e.write(id, latest, latest, fmt.Sprintf("Restored revision %s", old.RevisionID),
		func(d *types.FullArraySchemaData) { *d = oldData })
}

// write runs the update guard and saves the merged result on top of latest.
func (e *Editor) write(id types.SchemaID, base, latest *types.Revision, summary string, update merge.UpdateFunc) (*types.Revision, bool, error) {
	result, err := merge.GuardSchemaUpdate(
		merge.Snapshot{RevisionID: base.RevisionID, Content: base.Content},
		merge.Snapshot{RevisionID: latest.RevisionID, Content: latest.Content},
		update,
	)
	if err != nil {
		if errors.Is(err, types.ErrEditConflict) {
			e.logger.Warn("edit conflict",
				zap.String("schema_id", id.String()),
				zap.String("base_revision_id", base.RevisionID),
				zap.String("latest_revision_id", latest.RevisionID),
				zap.Error(err))
		}
		return nil, false, err
	}
	if result == nil {
		e.logger.Debug("skipped no-op edit", zap.String("schema_id", id.String()), zap.String("summary", summary))
		return latest, false, nil
	}

	content, err := e.encoder.EncodePersistence(id, *result)
	if err != nil {
		return nil, false, err
	}
	rev, err := e.store.Save(id, latest.RevisionID, content, summary)
	if err != nil {
		return nil, false, err
	}
	return rev, true, nil
}

// revision loads revisionID and checks that it belongs to id.
func (e *Editor) revision(id types.SchemaID, revisionID string) (*types.Revision, error) {
	rev, err := e.store.GetRevision(revisionID)
	if err != nil {
		return nil, err
	}
	if rev.SchemaID != id {
		return nil, fmt.Errorf("revision %s of schema %s: %w", revisionID, id, types.ErrNotFound)
	}
	return rev, nil
}

// revisionOrLatest returns the latest revision when revisionID is empty.
func (e *Editor) revisionOrLatest(id types.SchemaID, revisionID string) (*types.Revision, error) {
	if revisionID == "" {
		return e.store.Latest(id)
	}
	return e.revision(id, revisionID)
}
