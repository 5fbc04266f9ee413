package editor

import (
	"github.com/mesh-intelligence/entityschema/internal/schema"
	"github.com/mesh-intelligence/entityschema/internal/schemadiff"
	"github.com/mesh-intelligence/entityschema/pkg/types"
)

// Diff returns the changes between two revisions of a schema.
func (e *Editor) Diff(id types.SchemaID, fromRevisionID, toRevisionID string) (schemadiff.SchemaDiff, error) {
	from, err := e.revisionData(id, fromRevisionID)
	if err != nil {
		return schemadiff.SchemaDiff{}, err
	}
	to, err := e.revisionData(id, toRevisionID)
	if err != nil {
		return schemadiff.SchemaDiff{}, err
	}
	return schemadiff.DiffSchemas(from, to), nil
}

func (e *Editor) revisionData(id types.SchemaID, revisionID string) (types.FullArraySchemaData, error) {
	rev, err := e.revisionOrLatest(id, revisionID)
	if err != nil {
		return types.FullArraySchemaData{}, err
	}
	data, err := schema.FullArray(rev.Content)
	if err != nil {
		return types.FullArraySchemaData{}, err
	}
	return schema.Clean(data), nil
}

// FullView returns the schema grouped by language. languages are always
// present in the result; an empty revisionID means the latest revision.
func (e *Editor) FullView(id types.SchemaID, revisionID string, languages []string) (types.FullViewSchemaData, error) {
	rev, err := e.revisionOrLatest(id, revisionID)
	if err != nil {
		return types.FullViewSchemaData{}, err
	}
	return schema.FullView(rev.Content, languages)
}

// NameBadge returns the badge of the latest revision in lang.
func (e *Editor) NameBadge(id types.SchemaID, lang string) (types.NameBadge, error) {
	rev, err := e.store.Latest(id)
	if err != nil {
		return types.NameBadge{}, err
	}
	return schema.MonolingualNameBadge(rev.Content, lang)
}

// History returns every revision of a schema, oldest first.
func (e *Editor) History(id types.SchemaID) ([]*types.Revision, error) {
	return e.store.History(id)
}

// List returns the IDs of all stored schemas.
func (e *Editor) List() ([]types.SchemaID, error) {
	return e.store.ListSchemas()
}
