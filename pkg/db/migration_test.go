package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func tableColumns(t *testing.T, conn *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("pragmas: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk); err != nil {
			t.Fatalf("scan col: %v", err)
		}
		cols[colName] = true
	}
	return cols
}

// TestInitDBCreatesSchema verifies a fresh database has every table and the
// per-script reading columns on conjugations.
func TestInitDBCreatesSchema(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	if err := InitDB(dbConn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	for _, table := range []string{"entries", "kanji_elements", "kanji_metadata", "reading_elements", "reading_restrictions", "senses", "sense_pos", "glosses", "conjugations"} {
		var name string
		if err := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}

	cols := tableColumns(t, dbConn, "conjugations")
	for _, c := range []string{"entry_id", "category", "conjugation_type", "kanji_form", "hiragana_reading", "katakana_reading", "romaji_reading"} {
		if !cols[c] {
			t.Fatalf("expected %s in conjugations, got %v", c, cols)
		}
	}

	cols = tableColumns(t, dbConn, "sense_pos")
	if !cols["raw"] || !cols["code"] {
		t.Fatalf("expected raw and code in sense_pos, got %v", cols)
	}

	// Applying the schema twice is harmless.
	if err := InitDB(dbConn); err != nil {
		t.Fatalf("InitDB second run: %v", err)
	}
}

func TestReadingTypeConstraint(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()
	id, err := UpsertEntry(conn, Entry{EntSeq: "9"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	_, err = conn.Exec(`INSERT INTO reading_elements (entry_id, reading, reading_type, priority_order) VALUES (?, 'x', 'kunrei', 0)`, id)
	if err == nil {
		t.Fatalf("expected check constraint to reject reading_type")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jmconj.db")
	conn, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := UpsertEntry(conn, Entry{EntSeq: "1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	conn.Close()

	conn, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer conn.Close()
	n, err := CountEntries(conn)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected persisted entry, got %d", n)
	}
}
