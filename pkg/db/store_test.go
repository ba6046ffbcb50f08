package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleEntry() Entry {
	return Entry{
		EntSeq: "1169870",
		Kanji: []KanjiElement{
			{Text: "飲む", Common: true, Priority: []string{"ichi1", "news1"}},
			{Text: "呑む", Info: []string{"oK"}},
		},
		Readings: []ReadingElement{
			{Hiragana: "のむ", Katakana: "ノム", Romaji: "nomu", Common: true},
		},
		Senses: []Sense{
			{
				POS:     []POS{{Raw: "Godan verb with 'mu' ending", Code: "v5m"}, {Raw: "transitive verb", Code: "transitive verb"}},
				Glosses: []Gloss{{Text: "to drink"}, {Text: "to swallow", Lang: "eng"}},
			},
		},
	}
}

func TestUpsertEntry(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id1, err := UpsertEntry(db, sampleEntry())
	if err != nil {
		t.Fatalf("upsert entry: %v", err)
	}
	id2, err := UpsertEntry(db, sampleEntry())
	if err != nil {
		t.Fatalf("upsert entry again: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id, got %d and %d", id1, id2)
	}

	// A second upsert replaces children instead of duplicating them.
	counts := map[string]int{
		"kanji_elements":   2,
		"kanji_metadata":   3,
		"reading_elements": 3,
		"senses":           1,
		"sense_pos":        2,
		"glosses":          2,
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s: got %d rows, want %d", table, got, want)
		}
	}

	var lang string
	if err := db.QueryRow(`SELECT lang FROM glosses WHERE text = 'to drink'`).Scan(&lang); err != nil {
		t.Fatalf("query gloss: %v", err)
	}
	if lang != "eng" {
		t.Fatalf("expected default lang eng, got %q", lang)
	}

	n, err := CountEntries(db)
	if err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
}

func TestUpsertEntryRejectsEmptySeq(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if _, err := UpsertEntry(db, Entry{EntSeq: "  "}); err == nil {
		t.Fatalf("expected error for empty ent_seq")
	}
}

func TestGetReadings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	e := sampleEntry()
	e.Readings = append(e.Readings, ReadingElement{Hiragana: "のみ", Katakana: "ノミ", Romaji: "nomi", NoKanji: true})
	if _, err := UpsertEntry(db, e); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := GetReadings(db, "1169870", ReadingRomaji)
	if err != nil {
		t.Fatalf("get readings: %v", err)
	}
	if len(got) != 2 || got[0] != "nomu" || got[1] != "nomi" {
		t.Fatalf("unexpected romaji readings: %v", got)
	}

	got, err = GetReadings(db, "1169870", ReadingKatakana)
	if err != nil {
		t.Fatalf("get readings: %v", err)
	}
	if len(got) != 2 || got[0] != "ノム" {
		t.Fatalf("unexpected katakana readings: %v", got)
	}
}

func TestReadingRestrictions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	e := sampleEntry()
	e.Readings[0].AppliesToKanji = []string{"*"}
	e.Readings = append(e.Readings, ReadingElement{Hiragana: "のみ", Katakana: "ノミ", Romaji: "nomi", AppliesToKanji: []string{"呑む"}})
	for i := 0; i < 2; i++ {
		if _, err := UpsertEntry(db, e); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM reading_restrictions`).Scan(&rows); err != nil {
		t.Fatalf("count restrictions: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 restriction row after re-upsert, got %d", rows)
	}

	got, err := GetReadingRestrictions(db, "1169870")
	if err != nil {
		t.Fatalf("get restrictions: %v", err)
	}
	if len(got) != 1 || len(got["のみ"]) != 1 || got["のみ"][0] != "呑む" {
		t.Fatalf("unexpected restrictions: %v", got)
	}
}

func TestInsertAndGetConjugations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	id, err := UpsertEntry(db, sampleEntry())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	forms := []Conjugation{
		{Category: "v5m", Type: "past", KanjiForm: "飲んだ", Hiragana: "のんだ", Katakana: "ノンダ", Romaji: "nonda"},
		{Category: "v5m", Type: "te_form", KanjiForm: "飲んで", Hiragana: "のんで", Katakana: "ノンデ", Romaji: "nonde"},
	}
	if err := InsertConjugations(db, id, forms); err != nil {
		t.Fatalf("insert conjugations: %v", err)
	}
	// Same keys again overwrite rather than duplicate.
	forms[0].Romaji = "nonda!"
	if err := InsertConjugations(db, id, forms[:1]); err != nil {
		t.Fatalf("insert conjugations again: %v", err)
	}

	got, err := GetConjugations(db, "1169870")
	if err != nil {
		t.Fatalf("get conjugations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 conjugations, got %d", len(got))
	}
	if got[0].Romaji != "nonda!" || got[0].EntryID != id {
		t.Fatalf("unexpected first conjugation: %+v", got[0])
	}
	if got[1].KanjiForm != "飲んで" {
		t.Fatalf("unexpected second conjugation: %+v", got[1])
	}
}

func TestConjugationWithoutKanji(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	id, err := UpsertEntry(db, Entry{EntSeq: "2", Readings: []ReadingElement{{Hiragana: "する", Katakana: "スル", Romaji: "suru"}}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := InsertConjugations(db, id, []Conjugation{{Category: "v5r", Type: "present", Hiragana: "ある", Katakana: "アル", Romaji: "aru"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var kanji sql.NullString
	if err := db.QueryRow(`SELECT kanji_form FROM conjugations WHERE entry_id = ?`, id).Scan(&kanji); err != nil {
		t.Fatalf("query: %v", err)
	}
	if kanji.Valid {
		t.Fatalf("expected NULL kanji_form, got %q", kanji.String)
	}
}

func TestInsertConjugationsRejectsBadEntry(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if err := InsertConjugations(db, 0, nil); err == nil {
		t.Fatalf("expected error for entryID 0")
	}
}

func TestUpsertEntryInTx(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := UpsertEntry(tx, sampleEntry()); err != nil {
		t.Fatalf("upsert in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	n, err := CountEntries(db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected rollback to discard entry, got %d", n)
	}
}
