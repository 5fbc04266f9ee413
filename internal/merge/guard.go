// Package merge resolves concurrent schema edits with a three-way merge.
//
// The user's change is expressed as a diff from the revision they started
// editing (base) and replayed onto the current revision (parent). Edits to
// disjoint languages or fields merge; overlapping edits surface as an
// EditConflictError.
package merge

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/entityschema/internal/schema"
	"github.com/mesh-intelligence/entityschema/internal/schemadiff"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// Snapshot is the persisted JSON of one revision.
type Snapshot struct {
	RevisionID string
	Content    string
}

// UpdateFunc applies the user's intended change to data.
type UpdateFunc func(data *types.FullArraySchemaData)

// EditConflictError reports that an edit could not be merged onto the
// current revision.
type EditConflictError struct {
	BaseRevisionID   string
	ParentRevisionID string
	Conflict         *schemadiff.ConflictError
}

func (e *EditConflictError) Error() string {
	return fmt.Sprintf("%s: revision %s was edited since %s: %s",
		types.ErrEditConflict, e.ParentRevisionID, e.BaseRevisionID, e.Conflict)
}

// Is matches types.ErrEditConflict.
func (e *EditConflictError) Is(target error) bool { return target == types.ErrEditConflict }

// Unwrap returns the patch conflict.
func (e *EditConflictError) Unwrap() error { return e.Conflict }

// GuardSchemaUpdate applies update to base and merges the result onto
// parent. It returns nil data and a nil error when the update changes
// nothing; callers must then skip writing a revision.
func GuardSchemaUpdate(base, parent Snapshot, update UpdateFunc) (*types.PersistenceSchemaData, error) {
	baseData, err := schema.FullArray(base.Content)
	if err != nil {
		return nil, fmt.Errorf("reading base revision %s: %w", base.RevisionID, err)
	}

	updateData := baseData.Clone()
	update(&updateData)

	baseData = schema.Clean(baseData)
	updateData = schema.Clean(updateData)

	diff := schemadiff.DiffSchemas(baseData, updateData)
	if diff.IsEmpty() {
		return nil, nil
	}

	if base.RevisionID == parent.RevisionID {
		result := updateData.ToPersistence()
		return &result, nil
	}

	parentData, err := schema.FullArray(parent.Content)
	if err != nil {
		return nil, fmt.Errorf("reading parent revision %s: %w", parent.RevisionID, err)
	}

	patched, err := schemadiff.PatchSchema(parentData, diff)
	if err != nil {
		var conflict *schemadiff.ConflictError
		if errors.As(err, &conflict) {
			return nil, &EditConflictError{
				BaseRevisionID:   base.RevisionID,
				ParentRevisionID: parent.RevisionID,
				Conflict:         conflict,
			}
		}
		return nil, err
	}

	result := patched.ToPersistence()
	return &result, nil
}
