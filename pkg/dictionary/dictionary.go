package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// JMdictEntry matches the structure of jmdict-simplified entries. Entries
// read from JMdict XML are converted into the same shape.
type JMdictEntry struct {
	Id    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
	Sense []JMdictSense   `json:"sense"`
}

type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
	// AppliesToKanji restricts a reading to some kanji writings; "*" means all.
	AppliesToKanji []string `json:"appliesToKanji,omitempty"`
	// Priority holds raw ke_pri/re_pri markers (XML only).
	Priority []string `json:"priority,omitempty"`
	// NoKanji marks readings that are not a true reading of the kanji.
	NoKanji bool `json:"noKanji,omitempty"`
}

type JMdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Field        []string      `json:"field,omitempty"`
	Misc         []string      `json:"misc,omitempty"`
	Gloss        []JMdictGloss `json:"gloss"`
}

type JMdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"` // defaults to 'eng' if missing
	Type string `json:"type,omitempty"`
}

// Format identifies a dictionary file layout.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ErrUnknownFormat is returned for a format other than auto, json or xml.
var ErrUnknownFormat = errors.New("unknown dictionary format")

// DetectFormat resolves FormatAuto from the file extension.
func DetectFormat(path string, f Format) (Format, error) {
	switch Format(strings.ToLower(string(f))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	case FormatAuto, "":
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".xml" || strings.HasPrefix(strings.ToLower(filepath.Base(path)), "jmdict_e") {
			return FormatXML, nil
		}
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// LoadJMdict reads a dictionary in the given format.
func LoadJMdict(path string, f Format) ([]JMdictEntry, error) {
	resolved, err := DetectFormat(path, f)
	if err != nil {
		return nil, err
	}
	if resolved == FormatXML {
		return LoadJMdictXML(path)
	}
	return LoadJMdictSimplified(path)
}

// LoadJMdictSimplified reads a JSON file (array of entries) and returns them.
// Note: Real files are large, so in production we might want to stream this.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJMdictSimplified(f)
}

// ReadJMdictSimplified decodes either a { "words": [...] } wrapper or a bare array.
func ReadJMdictSimplified(r io.ReadSeeker) ([]JMdictEntry, error) {
	var getEntries struct {
		Words []JMdictEntry `json:"words"`
	}
	// Try parsing as full object wrapper first { "words": [...] }
	dec := json.NewDecoder(r)
	if err := dec.Decode(&getEntries); err == nil && len(getEntries.Words) > 0 {
		return fillDefaults(getEntries.Words), nil
	}

	// Reset and try as array [...]
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var entries []JMdictEntry
	dec = json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or array: %w", err)
	}
	return fillDefaults(entries), nil
}

func fillDefaults(entries []JMdictEntry) []JMdictEntry {
	for i := range entries {
		for j := range entries[i].Sense {
			for k := range entries[i].Sense[j].Gloss {
				if entries[i].Sense[j].Gloss[k].Lang == "" {
					entries[i].Sense[j].Gloss[k].Lang = "eng"
				}
			}
		}
	}
	return entries
}
