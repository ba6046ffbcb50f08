package script

import "strings"

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "i", 'ゑ': "e", 'を': "o", 'ゔ': "vu",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa",
}

// digraphs covers yōon and the small-vowel spellings used for loanwords.
var digraphs = map[string]string{
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"しぇ": "she", "じぇ": "je", "ちぇ": "che",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo",
}

func init() {
	yoonPrefixes := map[rune]string{
		'き': "ky", 'ぎ': "gy", 'し': "sh", 'じ': "j", 'ち': "ch", 'ぢ': "j",
		'に': "ny", 'ひ': "hy", 'び': "by", 'ぴ': "py", 'み': "my", 'り': "ry",
	}
	small := map[rune]string{'ゃ': "a", 'ゅ': "u", 'ょ': "o"}
	for base, prefix := range yoonPrefixes {
		for y, vowel := range small {
			digraphs[string([]rune{base, y})] = prefix + vowel
		}
	}
}

// Romanize renders hiragana (or katakana) as Hepburn romaji. Characters it
// does not know, such as kanji and punctuation, are copied through. A sokuon
// that cannot double a following consonant, as in あっ or あっあ, is written
// as an apostrophe.
func Romanize(s string) string {
	runes := []rune(ToHiragana(s))
	var b strings.Builder
	b.Grow(len(runes) * 2)

	geminate := false
	lastVowel := byte(0)
	flush := func() {
		if geminate {
			b.WriteByte('\'')
			geminate = false
		}
	}
	write := func(syllable string) {
		if geminate {
			switch c := syllable[0]; {
			case strings.HasPrefix(syllable, "ch"):
				b.WriteByte('t')
			case isVowel(c):
				b.WriteByte('\'')
			default:
				b.WriteByte(c)
			}
			geminate = false
		}
		b.WriteString(syllable)
		lastVowel = syllable[len(syllable)-1]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			if syl, ok := digraphs[string(runes[i:i+2])]; ok {
				write(syl)
				i++
				continue
			}
		}
		switch r {
		case 'っ':
			flush()
			geminate = true
			continue
		case 'ん':
			flush()
			write("n")
			// separate ambiguous n + vowel/y
			if i+1 < len(runes) {
				if next, ok := monographs[runes[i+1]]; ok && (isVowel(next[0]) || next[0] == 'y') {
					b.WriteByte('\'')
				}
			}
			continue
		case 'ー':
			flush()
			if isVowel(lastVowel) {
				b.WriteByte(lastVowel)
			}
			continue
		}
		if syl, ok := monographs[r]; ok {
			write(syl)
			continue
		}
		flush()
		lastVowel = 0
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}
