package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and column lists.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{revisionsJSONL, "revisions", []string{"revision_id", "schema_id", "parent_id", "seq", "content", "summary", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the matching table. Loading is transactional. Malformed lines and
// records that violate constraints are skipped; unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return 0, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		loaded += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// insertRecords inserts parsed JSONL records into table and returns how many
// were accepted.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}
