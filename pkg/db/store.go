package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// childTables are cleared before an entry is rewritten, children first.
var childTables = []string{
	`DELETE FROM kanji_metadata WHERE kanji_element_id IN (SELECT id FROM kanji_elements WHERE entry_id = ?)`,
	`DELETE FROM sense_pos WHERE sense_id IN (SELECT id FROM senses WHERE entry_id = ?)`,
	`DELETE FROM glosses WHERE sense_id IN (SELECT id FROM senses WHERE entry_id = ?)`,
	`DELETE FROM kanji_elements WHERE entry_id = ?`,
	`DELETE FROM reading_elements WHERE entry_id = ?`,
	`DELETE FROM reading_restrictions WHERE entry_id = ?`,
	`DELETE FROM senses WHERE entry_id = ?`,
	`DELETE FROM conjugations WHERE entry_id = ?`,
}

// UpsertEntry stores e and all its elements, replacing whatever was stored
// under the same ent_seq before. It returns the entry id.
func UpsertEntry(db DBExecutor, e Entry) (int64, error) {
	entSeq := strings.TrimSpace(e.EntSeq)
	if entSeq == "" {
		return 0, fmt.Errorf("ent_seq must be non-empty")
	}

	var id int64
	err := db.QueryRow(`INSERT INTO entries (ent_seq) VALUES (?)
			  ON CONFLICT(ent_seq) DO UPDATE SET ent_seq = excluded.ent_seq
			  RETURNING id`, entSeq).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert entry %s: %w", entSeq, err)
	}

	for _, q := range childTables {
		if _, err := db.Exec(q, id); err != nil {
			return 0, fmt.Errorf("clear entry %s: %w", entSeq, err)
		}
	}

	for i, k := range e.Kanji {
		if err := insertKanji(db, id, i, k); err != nil {
			return 0, fmt.Errorf("insert kanji %q: %w", k.Text, err)
		}
	}
	for i, r := range e.Readings {
		if err := insertReading(db, id, i, r); err != nil {
			return 0, fmt.Errorf("insert reading %q: %w", r.Hiragana, err)
		}
	}
	for i, s := range e.Senses {
		if err := insertSense(db, id, i, s); err != nil {
			return 0, fmt.Errorf("insert sense %d: %w", i, err)
		}
	}
	return id, nil
}

func insertKanji(db DBExecutor, entryID int64, pos int, k KanjiElement) error {
	res, err := db.Exec(`INSERT INTO kanji_elements (entry_id, kanji, position, common) VALUES (?, ?, ?, ?)`,
		entryID, k.Text, pos, k.Common)
	if err != nil {
		return err
	}
	kid, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, v := range k.Info {
		if _, err := db.Exec(`INSERT INTO kanji_metadata (kanji_element_id, kind, value) VALUES (?, 'info', ?)`, kid, v); err != nil {
			return err
		}
	}
	for _, v := range k.Priority {
		if _, err := db.Exec(`INSERT INTO kanji_metadata (kanji_element_id, kind, value) VALUES (?, 'priority', ?)`, kid, v); err != nil {
			return err
		}
	}
	return nil
}

// insertReading writes one row per script; the rows share priority_order.
func insertReading(db DBExecutor, entryID int64, order int, r ReadingElement) error {
	for _, row := range [...]struct{ text, typ string }{
		{r.Hiragana, ReadingHiragana},
		{r.Katakana, ReadingKatakana},
		{r.Romaji, ReadingRomaji},
	} {
		_, err := db.Exec(`INSERT INTO reading_elements (entry_id, reading, reading_type, no_kanji, common, priority_order)
			VALUES (?, ?, ?, ?, ?, ?)`, entryID, row.text, row.typ, r.NoKanji, r.Common, order)
		if err != nil {
			return err
		}
	}
	for _, k := range r.AppliesToKanji {
		if k == "*" {
			continue
		}
		if _, err := db.Exec(`INSERT INTO reading_restrictions (entry_id, priority_order, kanji) VALUES (?, ?, ?)`,
			entryID, order, k); err != nil {
			return err
		}
	}
	return nil
}

func insertSense(db DBExecutor, entryID int64, pos int, s Sense) error {
	res, err := db.Exec(`INSERT INTO senses (entry_id, position) VALUES (?, ?)`, entryID, pos)
	if err != nil {
		return err
	}
	sid, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, p := range s.POS {
		if _, err := db.Exec(`INSERT INTO sense_pos (sense_id, raw, code) VALUES (?, ?, ?)`, sid, p.Raw, p.Code); err != nil {
			return err
		}
	}
	for _, g := range s.Glosses {
		lang := g.Lang
		if lang == "" {
			lang = "eng"
		}
		if _, err := db.Exec(`INSERT INTO glosses (sense_id, text, lang, g_type) VALUES (?, ?, ?, ?)`,
			sid, g.Text, lang, nullableString(g.Type)); err != nil {
			return err
		}
	}
	return nil
}

// InsertConjugations stores generated forms for an entry. A form already
// stored for the same (entry, category, type) is overwritten.
func InsertConjugations(db DBExecutor, entryID int64, forms []Conjugation) error {
	if entryID <= 0 {
		return fmt.Errorf("entryID must be positive")
	}
	for _, c := range forms {
		_, err := db.Exec(`INSERT INTO conjugations
			(entry_id, category, conjugation_type, kanji_form, hiragana_reading, katakana_reading, romaji_reading)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(entry_id, category, conjugation_type) DO UPDATE SET
			  kanji_form = excluded.kanji_form,
			  hiragana_reading = excluded.hiragana_reading,
			  katakana_reading = excluded.katakana_reading,
			  romaji_reading = excluded.romaji_reading`,
			entryID, c.Category, c.Type, nullableString(c.KanjiForm), c.Hiragana, c.Katakana, c.Romaji)
		if err != nil {
			return fmt.Errorf("insert conjugation %s/%s: %w", c.Category, c.Type, err)
		}
	}
	return nil
}

// GetConjugations returns the stored forms of the entry with the given
// ent_seq, ordered by insertion.
func GetConjugations(db DBExecutor, entSeq string) ([]Conjugation, error) {
	rows, err := db.Query(`SELECT c.id, c.entry_id, c.category, c.conjugation_type, c.kanji_form,
		c.hiragana_reading, c.katakana_reading, c.romaji_reading
		FROM conjugations c JOIN entries e ON e.id = c.entry_id
		WHERE e.ent_seq = ? ORDER BY c.id`, entSeq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Conjugation
	for rows.Next() {
		var c Conjugation
		var kanji sql.NullString
		if err := rows.Scan(&c.ID, &c.EntryID, &c.Category, &c.Type, &kanji, &c.Hiragana, &c.Katakana, &c.Romaji); err != nil {
			return nil, err
		}
		if kanji.Valid {
			c.KanjiForm = kanji.String
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReadings returns the readings of an entry of the given script, in
// dictionary order.
func GetReadings(db DBExecutor, entSeq, readingType string) ([]string, error) {
	rows, err := db.Query(`SELECT r.reading FROM reading_elements r JOIN entries e ON e.id = r.entry_id
		WHERE e.ent_seq = ? AND r.reading_type = ? ORDER BY r.priority_order`, entSeq, readingType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetReadingRestrictions maps each restricted reading of an entry, by its
// hiragana, to the kanji writings it applies to. Unrestricted readings are
// absent from the map.
func GetReadingRestrictions(db DBExecutor, entSeq string) (map[string][]string, error) {
	rows, err := db.Query(`SELECT r.reading, rr.kanji
		FROM reading_restrictions rr
		JOIN entries e ON e.id = rr.entry_id
		JOIN reading_elements r ON r.entry_id = rr.entry_id
		  AND r.priority_order = rr.priority_order AND r.reading_type = ?
		WHERE e.ent_seq = ? ORDER BY rr.id`, ReadingHiragana, entSeq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var reading, kanji string
		if err := rows.Scan(&reading, &kanji); err != nil {
			return nil, err
		}
		out[reading] = append(out[reading], kanji)
	}
	return out, rows.Err()
}

// CountEntries returns the number of stored entries.
func CountEntries(db DBExecutor) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// nullableString returns nil for "" else the value.
func nullableString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
