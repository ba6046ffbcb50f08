// Package script converts Japanese text between hiragana, katakana and
// romaji. The conjugation engine never calls it; the ingest pipeline uses a
// Converter to store every generated form in all scripts.
package script

import (
	"golang.org/x/text/unicode/norm"
)

// Readings is one text rendered in the three phonetic scripts.
type Readings struct {
	Hiragana string `json:"hiragana"`
	Katakana string `json:"katakana"`
	Romaji   string `json:"romaji"`
}

// Converter renders text written in any Japanese script as Readings.
type Converter interface {
	Convert(text string) (Readings, error)
}

// KanaConverter converts kana text by code-point shifting and table
// romanization. Kanji pass through untouched in every script.
type KanaConverter struct{}

// Convert implements Converter. It never fails.
func (KanaConverter) Convert(text string) (Readings, error) {
	return FromKana(text), nil
}

// FromKana builds Readings for kana input. Half-width katakana and
// full-width ASCII are folded first.
func FromKana(text string) Readings {
	folded := norm.NFKC.String(text)
	hira := ToHiragana(folded)
	return Readings{
		Hiragana: hira,
		Katakana: ToKatakana(folded),
		Romaji:   Romanize(hira),
	}
}

const (
	hiraganaFirst = 0x3041 // ぁ
	hiraganaLast  = 0x3096 // ゖ
	katakanaFirst = 0x30A1 // ァ
	katakanaLast  = 0x30F6 // ヶ
	kanaOffset    = katakanaFirst - hiraganaFirst
)

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r >= katakanaFirst && r <= katakanaLast:
			runes[i] = r - kanaOffset
		case r == 'ヽ' || r == 'ヾ':
			runes[i] = r - kanaOffset
		}
	}
	return string(runes)
}

// ToKatakana converts Hiragana to Katakana.
func ToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
			runes[i] = r + kanaOffset
		case r == 'ゝ' || r == 'ゞ':
			runes[i] = r + kanaOffset
		}
	}
	return string(runes)
}

// IsKana reports whether every rune of s is hiragana, katakana or the
// prolonged sound mark. The empty string is not kana.
func IsKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= hiraganaFirst && r <= hiraganaLast:
		case r >= katakanaFirst && r <= katakanaLast:
		case r == 'ー' || r == 'ゝ' || r == 'ゞ' || r == 'ヽ' || r == 'ヾ':
		default:
			return false
		}
	}
	return true
}
