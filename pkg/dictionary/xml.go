package dictionary

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

type xmlEntry struct {
	EntSeq string `xml:"ent_seq"`
	KEle   []struct {
		Keb   string   `xml:"keb"`
		KeInf []string `xml:"ke_inf"`
		KePri []string `xml:"ke_pri"`
	} `xml:"k_ele"`
	REle []struct {
		Reb       string    `xml:"reb"`
		ReNokanji *struct{} `xml:"re_nokanji"`
		ReRestr   []string  `xml:"re_restr"`
		ReInf     []string  `xml:"re_inf"`
		RePri     []string  `xml:"re_pri"`
	} `xml:"r_ele"`
	Sense []struct {
		Pos   []string `xml:"pos"`
		Field []string `xml:"field"`
		Misc  []string `xml:"misc"`
		Gloss []struct {
			Text string `xml:",chardata"`
			Lang string `xml:"lang,attr"`
			Type string `xml:"g_type,attr"`
		} `xml:"gloss"`
	} `xml:"sense"`
}

// commonPriorities are the priority markers jmdict-simplified treats as "common".
var commonPriorities = map[string]bool{
	"news1": true, "ichi1": true, "spec1": true, "spec2": true, "gai1": true,
}

// LoadJMdictXML reads every entry of a JMdict XML file.
func LoadJMdictXML(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []JMdictEntry
	err = ReadJMdictXML(f, func(e JMdictEntry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadJMdictXML streams <entry> elements from r and calls fn for each one.
// Entity references such as &v5m; are not expanded against the DTD; they are
// reduced to their names ("v5m").
func ReadJMdictXML(r io.Reader, fn func(JMdictEntry) error) error {
	d := xml.NewDecoder(r)
	d.Strict = false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read jmdict xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "entry" {
			continue
		}
		var x xmlEntry
		if err := d.DecodeElement(&x, &se); err != nil {
			return fmt.Errorf("decode entry: %w", err)
		}
		if err := fn(x.toEntry()); err != nil {
			return err
		}
	}
}

func (x xmlEntry) toEntry() JMdictEntry {
	e := JMdictEntry{Id: strings.TrimSpace(x.EntSeq)}
	for _, k := range x.KEle {
		e.Kanji = append(e.Kanji, JMdictElement{
			Text:     strings.TrimSpace(k.Keb),
			Common:   isCommon(k.KePri),
			Tags:     stripEntityRefs(k.KeInf),
			Priority: k.KePri,
		})
	}
	for _, r := range x.REle {
		applies := []string{"*"}
		if len(r.ReRestr) > 0 {
			applies = r.ReRestr
		}
		if r.ReNokanji != nil {
			applies = nil
		}
		e.Kana = append(e.Kana, JMdictElement{
			Text:           strings.TrimSpace(r.Reb),
			Common:         isCommon(r.RePri),
			Tags:           stripEntityRefs(r.ReInf),
			AppliesToKanji: applies,
			Priority:       r.RePri,
			NoKanji:        r.ReNokanji != nil,
		})
	}
	for _, s := range x.Sense {
		sense := JMdictSense{
			PartOfSpeech: stripEntityRefs(s.Pos),
			Field:        stripEntityRefs(s.Field),
			Misc:         stripEntityRefs(s.Misc),
		}
		for _, g := range s.Gloss {
			lang := g.Lang
			if lang == "" {
				lang = "eng"
			}
			sense.Gloss = append(sense.Gloss, JMdictGloss{Text: g.Text, Lang: lang, Type: g.Type})
		}
		e.Sense = append(e.Sense, sense)
	}
	return e
}

func isCommon(priorities []string) bool {
	for _, p := range priorities {
		if commonPriorities[p] {
			return true
		}
	}
	return false
}

// StripEntityRef turns an unexpanded "&code;" into "code".
func StripEntityRef(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "&") {
		return s
	}
	return strings.TrimSuffix(s[1:], ";")
}

func stripEntityRefs(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = StripEntityRef(s)
	}
	return out
}
