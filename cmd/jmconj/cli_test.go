package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDict = `{"words": [
  {"id": "1169870",
   "kanji": [{"common": true, "text": "飲む", "tags": []}],
   "kana": [{"common": true, "text": "のむ", "tags": [], "appliesToKanji": ["*"]}],
   "sense": [{"partOfSpeech": ["v5m", "vt"], "gloss": [{"lang": "eng", "text": "to drink"}]}]},
  {"id": "1467640",
   "kanji": [{"common": true, "text": "猫", "tags": []}],
   "kana": [{"common": true, "text": "ねこ", "tags": [], "appliesToKanji": ["*"]}],
   "sense": [{"partOfSpeech": ["n"], "gloss": [{"lang": "eng", "text": "cat"}]}]}
]}`

// run executes the CLI in-process with a clean environment.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JMCONJ_CONFIG_FILE", "")
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDict(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(testDict), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jmconj dev\n", out)
}

func TestNormalize(t *testing.T) {
	out, err := run(t, "normalize", "Godan verb with 'mu' ending", "n", "ｖ１")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^Godan verb with 'mu' ending\s+v5m\s+true$`, lines[1])
	assert.Regexp(t, `^n\s+n\s+false$`, lines[2])
	assert.Regexp(t, `^ｖ１\s+v1\s+true$`, lines[3])
}

func TestConjugateWithPOS(t *testing.T) {
	out, err := run(t, "conjugate", "食べる", "--kana", "たべる", "--pos", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "POS")
	assert.Regexp(t, `v1\s+past\s+食べた\s+たべた\s+tabeta`, out)
	assert.Regexp(t, `v1\s+volitional\s+食べよう\s+たべよう\s+tabeyou`, out)
}

func TestConjugateKanaOnly(t *testing.T) {
	out, err := run(t, "conjugate", "きれい", "--pos", "adj-na", "--negation", "dewa")
	require.NoError(t, err)
	assert.Regexp(t, `adj-na\s+present_negative\s+-\s+きれいではない`, out)
}

func TestConjugateFromDictionary(t *testing.T) {
	dict := writeDict(t)
	out, err := run(t, "conjugate", "飲む", "--dict", dict)
	require.NoError(t, err)
	assert.Regexp(t, `v5m\s+te_form\s+飲んで\s+のんで\s+nonde`, out)
	assert.Equal(t, 11, strings.Count(out, "\n")) // header plus ten forms
}

func TestConjugateErrors(t *testing.T) {
	dict := writeDict(t)

	_, err := run(t, "conjugate", "猫", "--dict", dict)
	assert.ErrorContains(t, err, "no conjugations")

	_, err = run(t, "conjugate", "犬", "--dict", dict)
	assert.ErrorContains(t, err, "no dictionary entry")

	_, err = run(t, "conjugate", "ねこ", "--pos", "n")
	assert.ErrorContains(t, err, "not a conjugatable")

	_, err = run(t, "conjugate", "きれい", "--pos", "adj-na", "--negation", "keigo")
	assert.Error(t, err)

	_, err = run(t, "conjugate", "飲む", "--dict", filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorContains(t, err, "not found")
}

func TestImport(t *testing.T) {
	dict := writeDict(t)
	dbPath := filepath.Join(t.TempDir(), "jmconj.db")
	t.Setenv("JMCONJ_DICTIONARY_AUTO_DOWNLOAD", "false")

	out, err := run(t, "import", "--dict", dict, "--db", dbPath, "--workers", "2", "--batch-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 entries")
	assert.Contains(t, out, "1 conjugated, 10 forms")

	conn, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer conn.Close()

	var romaji string
	require.NoError(t, conn.QueryRow(`SELECT romaji_reading FROM conjugations WHERE conjugation_type = 'past'`).Scan(&romaji))
	assert.Equal(t, "nonda", romaji)

	_, err = run(t, "import", "--dict", dict, "--db", dbPath, "--kana-only")
	assert.ErrorContains(t, err, "unknown flag")
}

func TestImportMissingDictionary(t *testing.T) {
	t.Setenv("JMCONJ_DICTIONARY_AUTO_DOWNLOAD", "false")
	_, err := run(t, "import", "--dict", filepath.Join(t.TempDir(), "missing.json"), "--db", filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorContains(t, err, "failed to load dictionary")
}
