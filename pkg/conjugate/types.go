package conjugate

import "github.com/japaniel/jmconj/pkg/pos"

// FormType names one cell of an inflectional paradigm.
type FormType string

const (
	Present         FormType = "present"
	PresentNegative FormType = "present_negative"
	Past            FormType = "past"
	PastNegative    FormType = "past_negative"
	TeForm          FormType = "te_form"
	Potential       FormType = "potential"
	Passive         FormType = "passive"
	Causative       FormType = "causative"
	Imperative      FormType = "imperative"
	Volitional      FormType = "volitional"
	Adverbial       FormType = "adverbial"
)

// VerbForms is the emission order for every verb paradigm.
var VerbForms = []FormType{
	Present, PresentNegative, Past, PastNegative, TeForm,
	Potential, Passive, Causative, Imperative, Volitional,
}

// AdjectiveForms is the emission order for both adjective paradigms.
var AdjectiveForms = []FormType{
	Present, PresentNegative, Past, PastNegative, TeForm, Adverbial,
}

// Headword is one writing of a dictionary entry. Kana is always set; Kanji is
// empty for kana-only words.
type Headword struct {
	Kanji string `json:"kanji,omitempty"`
	Kana  string `json:"kana"`
}

// Form is a single inflected form. Kanji is empty when the headword has no
// kanji writing.
type Form struct {
	Type  FormType `json:"type"`
	Kanji string   `json:"kanji"`
	Kana  string   `json:"kana"`
}

// Result is the paradigm generated for one entry under one category.
type Result struct {
	Word     Headword     `json:"word"`
	Category pos.Category `json:"-"`
	Forms    []Form       `json:"forms"`
}

// Code returns the dictionary code of the result's category.
func (r Result) Code() string { return r.Category.String() }

// Lookup returns the form of type t, if present.
func (r Result) Lookup(t FormType) (Form, bool) {
	for _, f := range r.Forms {
		if f.Type == t {
			return f, true
		}
	}
	return Form{}, false
}
