package script

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"golang.org/x/text/unicode/norm"
)

// KagomeConverter reads kanji through the IPA dictionary so that mixed
// kanji/kana text can be rendered in every script.
type KagomeConverter struct {
	t *tokenizer.Tokenizer
}

// NewKagomeConverter creates a new tokenizer instance.
func NewKagomeConverter() (*KagomeConverter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeConverter{t: t}, nil
}

// Reading returns the katakana reading of text. Kana input is converted
// directly; tokens without a dictionary reading keep their surface form.
func (k *KagomeConverter) Reading(text string) string {
	text = norm.NFKC.String(text)
	if IsKana(text) {
		return ToKatakana(text)
	}

	var b strings.Builder
	for _, token := range k.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		// IPA features: 0-3 POS, 4 conjugation type, 5 conjugation form,
		// 6 base form, 7 reading, 8 pronunciation.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(features[7])
			continue
		}
		b.WriteString(ToKatakana(token.Surface))
	}
	return b.String()
}

// Convert implements Converter.
func (k *KagomeConverter) Convert(text string) (Readings, error) {
	return FromKana(k.Reading(text)), nil
}
