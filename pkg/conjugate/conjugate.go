// Package conjugate generates inflectional paradigms for Japanese verbs and
// adjectives from a dictionary headword and its grammatical category.
//
// Everything here is pure: no I/O, no shared mutable state. A Conjugator may
// be used from any number of goroutines.
package conjugate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/japaniel/jmconj/pkg/pos"
)

// NegationStyle selects how na-adjective negatives are spelled.
type NegationStyle int

const (
	// NegationJa produces 綺麗じゃない / 綺麗じゃなかった.
	NegationJa NegationStyle = iota
	// NegationDewa produces 綺麗ではない / 綺麗ではなかった.
	NegationDewa
)

func (s NegationStyle) String() string {
	switch s {
	case NegationJa:
		return "ja"
	case NegationDewa:
		return "dewa"
	}
	return fmt.Sprintf("NegationStyle(%d)", int(s))
}

// ParseNegationStyle accepts "ja" (the default when empty) or "dewa".
func ParseNegationStyle(s string) (NegationStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ja", "じゃ":
		return NegationJa, nil
	case "dewa", "では":
		return NegationDewa, nil
	}
	return NegationJa, fmt.Errorf("unknown negation style %q", s)
}

func (s NegationStyle) prefix() string {
	if s == NegationDewa {
		return "では"
	}
	return "じゃ"
}

// Conjugator holds generation options. The zero value is ready to use.
type Conjugator struct {
	negation NegationStyle
}

// Option configures a Conjugator.
type Option func(*Conjugator)

// WithNegationStyle sets the na-adjective negation spelling.
func WithNegationStyle(s NegationStyle) Option {
	return func(c *Conjugator) { c.negation = s }
}

// New returns a Conjugator with the given options applied.
func New(opts ...Option) *Conjugator {
	c := &Conjugator{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NegationStyle reports the configured na-adjective negation spelling.
func (c *Conjugator) NegationStyle() NegationStyle { return c.negation }

var defaultConjugator = New()

// Conjugate is the code-based entry point: it normalizes code, conjugates
// kanji/kana with the default options and returns nil for anything that is
// not one of the supported categories.
func Conjugate(kanji, kana, code string) []Form {
	return defaultConjugator.Conjugate(Headword{Kanji: kanji, Kana: kana}, pos.Parse(pos.Normalize(code)))
}

// Conjugate produces the full paradigm of hw under category c. Unsupported
// categories, and kuru verbs whose kana is not くる, yield nil.
func (c *Conjugator) Conjugate(hw Headword, cat pos.Category) []Form {
	if cat.IsGodan() {
		return conjugateGodan(hw, godanClassFor(hw.Kana, cat))
	}
	switch cat {
	case pos.Ichidan:
		return conjugateIchidan(hw)
	case pos.Kuru:
		return conjugateKuru(hw)
	case pos.IAdjective:
		return conjugateIAdjective(hw)
	case pos.NaAdjective:
		return c.conjugateNaAdjective(hw)
	}
	return nil
}

// paradigm appends suffixes to a kanji/kana stem pair. When the headword has
// no kanji the kanji side stays empty in every form.
type paradigm struct {
	hw        Headword
	kanjiStem string
	kanaStem  string
	forms     []Form
}

func newParadigm(hw Headword, kanjiStem, kanaStem string, size int) *paradigm {
	p := &paradigm{hw: hw, kanjiStem: kanjiStem, kanaStem: kanaStem, forms: make([]Form, 0, size)}
	p.forms = append(p.forms, Form{Type: Present, Kanji: hw.Kanji, Kana: hw.Kana})
	return p
}

func (p *paradigm) add(t FormType, suffix string) {
	f := Form{Type: t, Kana: p.kanaStem + suffix}
	if p.hw.Kanji != "" {
		f.Kanji = p.kanjiStem + suffix
	}
	p.forms = append(p.forms, f)
}

// dropLast removes the final character of s; "" stays "".
func dropLast(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func conjugateGodan(hw Headword, g godanClass) []Form {
	p := newParadigm(hw, dropLast(hw.Kanji), dropLast(hw.Kana), len(VerbForms))
	past, te := g.row.i+"た", g.row.i+"て"
	if g.onbin != nil {
		past, te = g.onbin.past, g.onbin.te
	}
	p.add(PresentNegative, g.row.a+"ない")
	p.add(Past, past)
	p.add(PastNegative, g.row.a+"なかった")
	p.add(TeForm, te)
	p.add(Potential, g.row.e+"る")
	p.add(Passive, g.row.a+"れる")
	p.add(Causative, g.row.a+"せる")
	p.add(Imperative, g.row.e)
	p.add(Volitional, g.row.o+"う")
	return p.forms
}

func conjugateIchidan(hw Headword) []Form {
	p := newParadigm(hw, dropLast(hw.Kanji), dropLast(hw.Kana), len(VerbForms))
	for i, suffix := range ichidanSuffixes {
		p.add(VerbForms[i+1], suffix)
	}
	return p.forms
}

func conjugateKuru(hw Headword) []Form {
	if hw.Kana != kuruKana {
		return nil
	}
	stem := dropLast(hw.Kanji)
	forms := make([]Form, len(kuruForms))
	for i, kf := range kuruForms {
		forms[i] = Form{Type: VerbForms[i], Kana: kf.kana}
		if hw.Kanji != "" {
			forms[i].Kanji = stem + kf.kanjiSuffix
		}
	}
	return forms
}

func conjugateIAdjective(hw Headword) []Form {
	p := newParadigm(hw, strings.TrimSuffix(hw.Kanji, "い"), strings.TrimSuffix(hw.Kana, "い"), len(AdjectiveForms))
	for i, suffix := range iAdjectiveSuffixes {
		p.add(AdjectiveForms[i+1], suffix)
	}
	return p.forms
}

func (c *Conjugator) conjugateNaAdjective(hw Headword) []Form {
	neg := c.negation.prefix()
	p := newParadigm(hw, hw.Kanji, hw.Kana, len(AdjectiveForms))
	p.add(PresentNegative, neg+"ない")
	p.add(Past, "だった")
	p.add(PastNegative, neg+"なかった")
	p.add(TeForm, "で")
	p.add(Adverbial, "に")
	return p.forms
}
