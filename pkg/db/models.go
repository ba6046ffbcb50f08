package db

// Reading types stored in reading_elements.reading_type.
const (
	ReadingHiragana = "hiragana"
	ReadingKatakana = "katakana"
	ReadingRomaji   = "romaji"
)

// Entry is one dictionary entry ready to be persisted.
type Entry struct {
	ID       int64
	EntSeq   string
	Kanji    []KanjiElement
	Readings []ReadingElement
	Senses   []Sense
}

// KanjiElement is a kanji writing with its info tags and priority markers.
type KanjiElement struct {
	Text     string
	Common   bool
	Info     []string
	Priority []string
}

// ReadingElement is a kana reading rendered in every script.
type ReadingElement struct {
	Hiragana string
	Katakana string
	Romaji   string
	NoKanji  bool
	Common   bool
	// AppliesToKanji lists the kanji writings the reading is restricted to.
	// Empty, or the single wildcard "*", means every writing.
	AppliesToKanji []string
}

// Sense groups part-of-speech tags and glosses.
type Sense struct {
	POS     []POS
	Glosses []Gloss
}

// POS keeps the label as found in the dictionary next to its canonical code.
type POS struct {
	Raw  string
	Code string
}

type Gloss struct {
	Text string
	Lang string
	Type string
}

// Conjugation is one generated form of an entry.
type Conjugation struct {
	ID        int64
	EntryID   int64
	Category  string
	Type      string
	KanjiForm string
	Hiragana  string
	Katakana  string
	Romaji    string
}
