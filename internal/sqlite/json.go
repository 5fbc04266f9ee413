package sqlite

// revisionJSON is one line of revisions.jsonl.
type revisionJSON struct {
	RevisionID string  `json:"revision_id"`
	SchemaID   string  `json:"schema_id"`
	ParentID   *string `json:"parent_id"`
	Seq        int64   `json:"seq"`
	Content    string  `json:"content"`
	Summary    string  `json:"summary"`
	CreatedAt  string  `json:"created_at"`
}
