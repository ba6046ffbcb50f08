package conjugate

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/japaniel/jmconj/pkg/pos"
)

// Sense carries the raw part-of-speech labels of one dictionary sense.
type Sense struct {
	POS []string
}

// Categories normalizes every label across senses and returns the distinct
// conjugatable codes in first-seen order.
func Categories(senses []Sense) []string {
	set := linkedhashset.New()
	for _, s := range senses {
		for _, raw := range s.POS {
			code := pos.Normalize(raw)
			if pos.IsConjugatable(code) {
				set.Add(code)
			}
		}
	}
	codes := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		codes = append(codes, v.(string))
	}
	return codes
}

// Representative picks the headword used for every category of an entry:
// the first kanji writing when there is one, paired with the first kana
// reading. An entry without readings falls back to its kanji text so that
// the kana side is never empty when any writing exists.
func Representative(kanji, kana []string) Headword {
	var hw Headword
	if len(kanji) > 0 {
		hw.Kanji = kanji[0]
	}
	if len(kana) > 0 {
		hw.Kana = kana[0]
	} else {
		hw.Kana = hw.Kanji
	}
	return hw
}

// GenerateForEntry conjugates the representative headword of an entry once
// per eligible category and returns the non-empty paradigms. Categories are
// emitted in first-seen order; callers should not rely on that ordering.
func (c *Conjugator) GenerateForEntry(senses []Sense, kanji, kana []string) []Result {
	codes := Categories(senses)
	if len(codes) == 0 {
		return nil
	}
	hw := Representative(kanji, kana)
	var results []Result
	for _, code := range codes {
		cat := pos.Parse(code)
		forms := c.Conjugate(hw, cat)
		if len(forms) == 0 {
			continue
		}
		results = append(results, Result{Word: hw, Category: cat, Forms: forms})
	}
	return results
}
