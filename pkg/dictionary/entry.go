package dictionary

import "github.com/japaniel/jmconj/pkg/conjugate"

// KanjiTexts returns the kanji writings in dictionary order.
func (e JMdictEntry) KanjiTexts() []string {
	return texts(e.Kanji)
}

// KanaTexts returns the kana readings in dictionary order.
func (e JMdictEntry) KanaTexts() []string {
	return texts(e.Kana)
}

// Senses exposes the part-of-speech labels of each sense.
func (e JMdictEntry) Senses() []conjugate.Sense {
	out := make([]conjugate.Sense, len(e.Sense))
	for i, s := range e.Sense {
		out[i] = conjugate.Sense{POS: s.PartOfSpeech}
	}
	return out
}

// Conjugate generates one paradigm per conjugatable category of the entry.
func (e JMdictEntry) Conjugate(c *conjugate.Conjugator) []conjugate.Result {
	return c.GenerateForEntry(e.Senses(), e.KanjiTexts(), e.KanaTexts())
}

func texts(elems []JMdictElement) []string {
	if len(elems) == 0 {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, el := range elems {
		out = append(out, el.Text)
	}
	return out
}
