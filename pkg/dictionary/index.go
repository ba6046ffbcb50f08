package dictionary

import (
	"sort"

	"github.com/japaniel/jmconj/pkg/script"
)

// Index is an in-memory lookup of entries by any kanji or kana writing.
type Index struct {
	// Key: string (Kanji or Kana), Value: List of matching JMdictEntry.
	// Read-only after NewIndex, so Lookup is safe for concurrent use.
	index map[string][]JMdictEntry
	size  int
}

// NewIndex builds an in-memory index of the provided dictionary.
func NewIndex(entries []JMdictEntry) *Index {
	idx := make(map[string][]JMdictEntry)
	for _, e := range entries {
		seen := make(map[string]bool)
		add := func(text string) {
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			idx[text] = append(idx[text], e)
		}
		for _, k := range e.Kanji {
			add(k.Text)
		}
		for _, k := range e.Kana {
			add(k.Text)
		}
	}
	return &Index{index: idx, size: len(entries)}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.size }

// Lookup finds entries written as word. When reading is non-empty only
// entries with a matching kana reading (compared as hiragana) are returned.
// Results are sorted by entry id.
func (ix *Index) Lookup(word, reading string) []JMdictEntry {
	if word == "" {
		return nil
	}
	candidates := ix.index[word]

	var results []JMdictEntry
	for _, entry := range candidates {
		if isMatch(entry, reading) {
			results = append(results, entry)
		}
	}

	// Sort results deterministically to ensure consistent behavior.
	sort.Slice(results, func(i, j int) bool {
		return results[i].Id < results[j].Id
	})
	return results
}

func isMatch(entry JMdictEntry, reading string) bool {
	if reading == "" {
		return true
	}
	normalized := script.ToHiragana(reading)
	for _, k := range entry.Kana {
		if script.ToHiragana(k.Text) == normalized {
			return true
		}
	}
	return false
}
