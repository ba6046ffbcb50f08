package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/jmconj/pkg/conjugate"
	"github.com/japaniel/jmconj/pkg/pos"
)

func TestEntryConjugate(t *testing.T) {
	e := JMdictEntry{
		Id:    "1169870",
		Kanji: []JMdictElement{{Text: "飲む"}, {Text: "呑む"}},
		Kana:  []JMdictElement{{Text: "のむ"}},
		Sense: []JMdictSense{
			{PartOfSpeech: []string{"Godan verb with 'mu' ending", "transitive verb"}},
			{PartOfSpeech: []string{"v5m"}},
		},
	}

	assert.Equal(t, []string{"飲む", "呑む"}, e.KanjiTexts())
	assert.Equal(t, []string{"のむ"}, e.KanaTexts())

	results := e.Conjugate(conjugate.New())
	require.Len(t, results, 1)
	assert.Equal(t, pos.GodanMu, results[0].Category)
	assert.Equal(t, conjugate.Headword{Kanji: "飲む", Kana: "のむ"}, results[0].Word)

	past, ok := results[0].Lookup(conjugate.Past)
	require.True(t, ok)
	assert.Equal(t, "飲んだ", past.Kanji)
	assert.Equal(t, "のんだ", past.Kana)
}

func TestEntryConjugate_Nothing(t *testing.T) {
	e := JMdictEntry{
		Kana:  []JMdictElement{{Text: "ねこ"}},
		Sense: []JMdictSense{{PartOfSpeech: []string{"n"}}},
	}
	assert.Empty(t, e.Conjugate(conjugate.New()))
	assert.Nil(t, JMdictEntry{}.KanjiTexts())
	assert.Empty(t, JMdictEntry{}.Senses())
}
