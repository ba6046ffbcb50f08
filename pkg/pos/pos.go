// Package pos maps heterogeneous JMdict part-of-speech labels onto the closed
// set of grammatical categories the conjugation engine understands.
package pos

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category is a canonical grammatical class.
type Category int

const (
	// Uncategorized covers every code that cannot be conjugated.
	Uncategorized Category = iota
	GodanU
	GodanKu
	GodanGu
	GodanSu
	GodanTsu
	GodanNu
	GodanBu
	GodanMu
	GodanRu
	Ichidan
	Kuru
	IAdjective
	NaAdjective
)

var categoryCodes = [...]string{
	Uncategorized: "",
	GodanU:        "v5u",
	GodanKu:       "v5k",
	GodanGu:       "v5g",
	GodanSu:       "v5s",
	GodanTsu:      "v5t",
	GodanNu:       "v5n",
	GodanBu:       "v5b",
	GodanMu:       "v5m",
	GodanRu:       "v5r",
	Ichidan:       "v1",
	Kuru:          "vk",
	IAdjective:    "adj-i",
	NaAdjective:   "adj-na",
}

// Categories lists every conjugatable category in declaration order.
var Categories = []Category{
	GodanU, GodanKu, GodanGu, GodanSu, GodanTsu, GodanNu, GodanBu, GodanMu, GodanRu,
	Ichidan, Kuru, IAdjective, NaAdjective,
}

// String returns the dictionary code of c ("v5m", "adj-i", ...).
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryCodes) {
		return ""
	}
	return categoryCodes[c]
}

// IsGodan reports whether c is one of the nine godan stem classes.
func (c Category) IsGodan() bool {
	return c >= GodanU && c <= GodanRu
}

// Parse resolves a canonical code to its Category. Codes outside the closed
// set, including godan/ichidan subclasses such as "v5k-s" or "v1-s", map to
// Uncategorized.
func Parse(code string) Category {
	for i, s := range categoryCodes {
		if i != int(Uncategorized) && s == code {
			return Category(i)
		}
	}
	return Uncategorized
}

// labels maps descriptive JMdict entity expansions onto canonical codes.
// Canonical codes are matched separately so they always map to themselves.
var labels = map[string]string{
	"adjective (keiyoushi)":                             "adj-i",
	"adjectival nouns or quasi-adjectives (keiyodoshi)": "adj-na",
	"Godan verb with 'u' ending":                        "v5u",
	"Godan verb with 'ku' ending":                       "v5k",
	"Godan verb with 'gu' ending":                       "v5g",
	"Godan verb with 'su' ending":                       "v5s",
	"Godan verb with 'tsu' ending":                      "v5t",
	"Godan verb with 'nu' ending":                       "v5n",
	"Godan verb with 'bu' ending":                       "v5b",
	"Godan verb with 'mu' ending":                       "v5m",
	"Godan verb with 'ru' ending":                       "v5r",
	"Ichidan verb":                                      "v1",
	"Kuru verb - special class":                         "vk",
}

// Normalize maps raw to a canonical code. Unknown labels come back unchanged,
// so Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(raw string) string {
	if Parse(raw) != Uncategorized {
		return raw
	}
	if code, ok := labels[raw]; ok {
		return code
	}
	// Dictionary dumps occasionally carry full-width punctuation or stray
	// whitespace around the label.
	folded := strings.TrimSpace(norm.NFKC.String(raw))
	if folded == raw {
		return raw
	}
	if Parse(folded) != Uncategorized {
		return folded
	}
	if code, ok := labels[folded]; ok {
		return code
	}
	return raw
}

// IsConjugatable reports whether a normalized code is eligible for
// conjugation: the two adjective classes, the kuru verb, or anything in the
// ichidan (v1) or godan (v5) families.
func IsConjugatable(code string) bool {
	switch code {
	case "adj-i", "adj-na", "vk":
		return true
	}
	return strings.HasPrefix(code, "v1") || strings.HasPrefix(code, "v5")
}
