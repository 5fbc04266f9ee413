// Package sqlite implements the SQLite revision store for entity schemas.
package sqlite

// Schema DDL. Revisions are numbered per schema by seq, starting at 1.
const (
	createRevisions = `CREATE TABLE revisions (
    revision_id TEXT PRIMARY KEY,
    schema_id TEXT NOT NULL,
    parent_id TEXT,
    seq INTEGER NOT NULL,
    content TEXT NOT NULL,
    summary TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxRevisionsSchemaSeq = `CREATE UNIQUE INDEX idx_revisions_schema_seq ON revisions(schema_id, seq);`
	idxRevisionsParent    = `CREATE INDEX idx_revisions_parent ON revisions(parent_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRevisions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRevisionsSchemaSeq,
	idxRevisionsParent,
}
