package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/jmconj/pkg/conjugate"
	"github.com/japaniel/jmconj/pkg/dictionary"
	"github.com/japaniel/jmconj/pkg/pos"
	"github.com/japaniel/jmconj/pkg/script"
)

func conjugateCmd(a *app) *cobra.Command {
	var (
		kana     string
		posCode  string
		dictPath string
		negation string
	)

	cmd := &cobra.Command{
		Use:   "conjugate WORD",
		Short: "Print the conjugation paradigm of a word",
		Long: `Print every generated form of WORD as a tab-separated table.

With --pos the word is conjugated directly under that part of speech (a code
such as v5m or a JMdict description). Without it the word is looked up in the
dictionary and conjugated once per conjugatable part of speech of each match.
A kanji word given with --pos but without --kana is read with the kagome
tokenizer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := strings.TrimSpace(args[0])
			if negation == "" {
				negation = a.cfg.Conjugation.NegationStyle
			}
			style, err := conjugate.ParseNegationStyle(negation)
			if err != nil {
				return err
			}
			c := conjugate.New(conjugate.WithNegationStyle(style))

			var results []conjugate.Result
			if posCode != "" {
				hw, err := headword(word, kana)
				if err != nil {
					return err
				}
				code := pos.Normalize(posCode)
				if !pos.IsConjugatable(code) {
					return fmt.Errorf("%q is not a conjugatable part of speech", posCode)
				}
				cat := pos.Parse(code)
				if forms := c.Conjugate(hw, cat); len(forms) > 0 {
					results = append(results, conjugate.Result{Word: hw, Category: cat, Forms: forms})
				}
			} else {
				if dictPath == "" {
					dictPath = a.cfg.Dictionary.Path
				}
				if !fileExists(dictPath) {
					return fmt.Errorf("dictionary %s not found; pass --pos or run import first", dictPath)
				}
				entries, err := dictionary.LoadJMdict(dictPath, dictionary.Format(a.cfg.Dictionary.Format))
				if err != nil {
					return fmt.Errorf("failed to load dictionary: %w", err)
				}
				matches := dictionary.NewIndex(entries).Lookup(word, kana)
				if len(matches) == 0 {
					return fmt.Errorf("no dictionary entry for %q", word)
				}
				for _, m := range matches {
					results = append(results, m.Conjugate(c)...)
				}
			}

			if len(results) == 0 {
				return fmt.Errorf("no conjugations for %q", word)
			}
			return printResults(a.out, results)
		},
	}

	cmd.Flags().StringVar(&kana, "kana", "", "Kana reading of WORD")
	cmd.Flags().StringVar(&posCode, "pos", "", "Part of speech (code or JMdict description)")
	cmd.Flags().StringVar(&dictPath, "dict", "", "Dictionary used to resolve parts of speech")
	cmd.Flags().StringVar(&negation, "negation", "", "Na-adjective negation style: ja or dewa")
	return cmd
}

// headword builds the headword for a direct conjugation. Kana words need no
// reading; kanji words without one are read by the tokenizer.
func headword(word, kana string) (conjugate.Headword, error) {
	if kana != "" {
		if script.IsKana(word) {
			return conjugate.Headword{Kana: kana}, nil
		}
		return conjugate.Headword{Kanji: word, Kana: kana}, nil
	}
	if script.IsKana(word) {
		return conjugate.Headword{Kana: word}, nil
	}
	conv, err := script.NewKagomeConverter()
	if err != nil {
		return conjugate.Headword{}, fmt.Errorf("no --kana given and tokenizer unavailable: %w", err)
	}
	r, err := conv.Convert(word)
	if err != nil {
		return conjugate.Headword{}, err
	}
	return conjugate.Headword{Kanji: word, Kana: r.Hiragana}, nil
}

func printResults(out io.Writer, results []conjugate.Result) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tFORM\tKANJI\tKANA\tROMAJI")
	for _, r := range results {
		for _, f := range r.Forms {
			kanji := f.Kanji
			if kanji == "" {
				kanji = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Code(), f.Type, kanji, f.Kana, script.Romanize(script.ToHiragana(f.Kana)))
		}
	}
	return w.Flush()
}
