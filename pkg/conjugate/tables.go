package conjugate

import (
	"unicode/utf8"

	"github.com/japaniel/jmconj/pkg/pos"
)

// row holds the mutated kana of a godan ending for each vowel row.
type row struct {
	a, i, e, o string
}

// onbin is the euphonic past/te-form suffix pair for a godan ending.
type onbin struct {
	past, te string
}

type godanClass struct {
	ending string
	row    row
	// onbin is nil when past/te use the regular i-row mutation.
	onbin *onbin
}

var (
	onbinNda = &onbin{past: "んだ", te: "んで"}
	onbinTta = &onbin{past: "った", te: "って"}
	onbinIta = &onbin{past: "いた", te: "いて"}
	onbinIda = &onbin{past: "いだ", te: "いで"}
)

var godanClasses = map[pos.Category]godanClass{
	pos.GodanU:   {"う", row{"わ", "い", "え", "お"}, onbinTta},
	pos.GodanKu:  {"く", row{"か", "き", "け", "こ"}, onbinIta},
	pos.GodanGu:  {"ぐ", row{"が", "ぎ", "げ", "ご"}, onbinIda},
	pos.GodanSu:  {"す", row{"さ", "し", "せ", "そ"}, nil},
	pos.GodanTsu: {"つ", row{"た", "ち", "て", "と"}, onbinTta},
	pos.GodanNu:  {"ぬ", row{"な", "に", "ね", "の"}, onbinNda},
	pos.GodanBu:  {"ぶ", row{"ば", "び", "べ", "ぼ"}, onbinNda},
	pos.GodanMu:  {"む", row{"ま", "み", "め", "も"}, onbinNda},
	pos.GodanRu:  {"る", row{"ら", "り", "れ", "ろ"}, onbinTta},
}

// godanEndings indexes the classes by their dictionary-form final kana.
var godanEndings = func() map[string]godanClass {
	m := make(map[string]godanClass, len(godanClasses))
	for _, g := range godanClasses {
		m[g.ending] = g
	}
	return m
}()

// godanClassFor picks the mutation row from the final kana of the reading.
// The category's row is used only when that kana is not a godan ending.
func godanClassFor(kana string, cat pos.Category) godanClass {
	if r, size := utf8.DecodeLastRuneInString(kana); size > 0 {
		if g, ok := godanEndings[string(r)]; ok {
			return g
		}
	}
	return godanClasses[cat]
}

// Ending returns the dictionary-form final kana of a godan category.
func Ending(c pos.Category) (string, bool) {
	g, ok := godanClasses[c]
	return g.ending, ok
}

// suffixes attached to the ichidan stem, in VerbForms order after Present.
var ichidanSuffixes = [...]string{
	"ない", "た", "なかった", "て", "られる", "られる", "させる", "ろ", "よう",
}

// kuruForm pairs the suffix written after 来 with the full kana reading.
type kuruForm struct {
	kanjiSuffix, kana string
}

const kuruKana = "くる"

// kuruForms follows VerbForms order.
var kuruForms = [...]kuruForm{
	{"る", "くる"},
	{"ない", "こない"},
	{"た", "きた"},
	{"なかった", "こなかった"},
	{"て", "きて"},
	{"られる", "こられる"},
	{"られる", "こられる"},
	{"させる", "こさせる"},
	{"い", "こい"},
	{"よう", "こよう"},
}

// i-adjective suffixes in AdjectiveForms order after Present.
var iAdjectiveSuffixes = [...]string{"くない", "かった", "くなかった", "くて", "く"}
