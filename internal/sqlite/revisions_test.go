package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

func TestSave(t *testing.T) {
	b, _ := attachedBackend(t)

	first, err := b.Save("E1", "", `{"a":1}`, "create")
	require.NoError(t, err)
	assert.NotEmpty(t, first.RevisionID)
	assert.Empty(t, first.ParentID)
	assert.Equal(t, types.SchemaID("E1"), first.SchemaID)

	tests := []struct {
		name     string
		id       types.SchemaID
		parentID string
		wantErr  error
	}{
		{"create existing schema", "E1", "", types.ErrAlreadyExists},
		{"stale parent", "E1", "not-the-latest", types.ErrStaleRevision},
		{"edit missing schema", "E2", first.RevisionID, types.ErrNotFound},
		{"empty schema id", "", "", types.ErrInvalidSchemaID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Save(tt.id, tt.parentID, `{}`, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	second, err := b.Save("E1", first.RevisionID, `{"a":2}`, "edit")
	require.NoError(t, err)
	assert.Equal(t, first.RevisionID, second.ParentID)

	_, err = b.Save("E1", first.RevisionID, `{"a":3}`, "late edit")
	assert.ErrorIs(t, err, types.ErrStaleRevision)
}

func TestSaveAppendsJSONL(t *testing.T) {
	b, dir := attachedBackend(t)

	first, err := b.Save("E3", "", `{"a":1}`, "create")
	require.NoError(t, err)
	_, err = b.Save("E3", first.RevisionID, `{"a":2}`, "edit")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, revisionsJSONL))
	require.NoError(t, err)
	defer f.Close()

	var records []revisionJSON
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec revisionJSON
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, records, 2)

	assert.Nil(t, records[0].ParentID)
	assert.Equal(t, int64(1), records[0].Seq)
	require.NotNil(t, records[1].ParentID)
	assert.Equal(t, first.RevisionID, *records[1].ParentID)
	assert.Equal(t, int64(2), records[1].Seq)
	assert.Equal(t, `{"a":2}`, records[1].Content)
}

func TestGetRevision(t *testing.T) {
	b, _ := attachedBackend(t)

	saved, err := b.Save("E1", "", `{"a":1}`, "create")
	require.NoError(t, err)

	got, err := b.GetRevision(saved.RevisionID)
	require.NoError(t, err)
	assert.Equal(t, saved.RevisionID, got.RevisionID)
	assert.Equal(t, "create", got.Summary)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))

	text, err := b.GetContentText(saved.RevisionID)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	_, err = b.GetRevision("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.GetRevision("")
	assert.ErrorIs(t, err, types.ErrInvalidRevision)
}

func TestGetParentRevision(t *testing.T) {
	b, _ := attachedBackend(t)

	first, err := b.Save("E1", "", `{"a":1}`, "")
	require.NoError(t, err)
	second, err := b.Save("E1", first.RevisionID, `{"a":2}`, "")
	require.NoError(t, err)

	parent, err := b.GetParentRevision(second.RevisionID)
	require.NoError(t, err)
	assert.Equal(t, first.RevisionID, parent.RevisionID)

	_, err = b.GetParentRevision(first.RevisionID)
	assert.ErrorIs(t, err, types.ErrNoParentRevision)
}

func TestLatestAndHistory(t *testing.T) {
	b, _ := attachedBackend(t)

	_, err := b.Latest("E1")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.History("E1")
	assert.ErrorIs(t, err, types.ErrNotFound)

	parent := ""
	var ids []string
	for _, content := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		rev, err := b.Save("E1", parent, content, "")
		require.NoError(t, err)
		parent = rev.RevisionID
		ids = append(ids, rev.RevisionID)
	}

	latest, err := b.Latest("E1")
	require.NoError(t, err)
	assert.Equal(t, ids[2], latest.RevisionID)

	history, err := b.History("E1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, rev := range history {
		assert.Equal(t, ids[i], rev.RevisionID)
	}
}

func TestListSchemasOrdersNumerically(t *testing.T) {
	b, _ := attachedBackend(t)

	ids, err := b.ListSchemas()
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []types.SchemaID{"E10", "O3", "E2", "E1"} {
		_, err := b.Save(id, "", `{}`, "")
		require.NoError(t, err)
	}

	ids, err = b.ListSchemas()
	require.NoError(t, err)
	assert.Equal(t, []types.SchemaID{"E1", "E2", "E10", "O3"}, ids)
}

func TestExport(t *testing.T) {
	b, _ := attachedBackend(t)

	first, err := b.Save("E2", "", `{"a":1}`, "")
	require.NoError(t, err)
	_, err = b.Save("E2", first.RevisionID, `{"a":2}`, "")
	require.NoError(t, err)
	_, err = b.Save("E1", "", `{"b":1}`, "")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "export.jsonl")
	n, err := b.Export(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := readJSONL(out)
	require.NoError(t, err)
	require.Len(t, records, 3)

	var rec revisionJSON
	require.NoError(t, json.Unmarshal(records[0], &rec))
	assert.Equal(t, "E1", rec.SchemaID)
}
