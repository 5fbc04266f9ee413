// Tests for startup loading of revisions.jsonl.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/entityschema/pkg/types"
)

func TestLoadJSONL(t *testing.T) {
	tests := []struct {
		name       string
		jsonl      string
		wantRows   int
		wantLatest string
	}{
		{
			name: "unknown fields are ignored",
			jsonl: `{"revision_id":"r1","schema_id":"E1","parent_id":null,"seq":1,"content":"{}","summary":"","created_at":"2025-01-15T10:30:00Z","future_field":42}
`,
			wantRows:   1,
			wantLatest: "r1",
		},
		{
			name: "malformed and incomplete lines are skipped",
			jsonl: `{"revision_id":"r1","schema_id":"E1","parent_id":null,"seq":1,"content":"{}","summary":"","created_at":"2025-01-15T10:30:00Z"}
{"revision_id":"r2","schema_id":"E1"
{"revision_id":"r3","schema_id":"E1","seq":2}
{"revision_id":"r4","schema_id":"E1","parent_id":"r1","seq":2,"content":"{}","summary":"","created_at":"2025-01-15T10:31:00Z"}
`,
			wantRows:   2,
			wantLatest: "r4",
		},
		{
			name: "duplicate sequence numbers keep the first record",
			jsonl: `{"revision_id":"r1","schema_id":"E1","parent_id":null,"seq":1,"content":"{}","summary":"","created_at":"2025-01-15T10:30:00Z"}
{"revision_id":"r2","schema_id":"E1","parent_id":null,"seq":1,"content":"{}","summary":"","created_at":"2025-01-15T10:30:00Z"}
`,
			wantRows:   1,
			wantLatest: "r1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, revisionsJSONL), []byte(tt.jsonl), 0o644))

			b := NewBackend(nil)
			require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
			defer b.Detach()

			var count int
			require.NoError(t, b.db.QueryRow("SELECT COUNT(*) FROM revisions").Scan(&count))
			assert.Equal(t, tt.wantRows, count)

			latest, err := b.Latest("E1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLatest, latest.RevisionID)
		})
	}
}
