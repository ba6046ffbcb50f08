package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/japaniel/jmconj/pkg/config"
	"github.com/japaniel/jmconj/pkg/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	out        io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:   "jmconj",
		Short: "JMdict importer and Japanese conjugation generator",
		Long: `jmconj loads the JMdict dictionary (jmdict-simplified JSON or JMdict XML),
stores entries in SQLite and generates the conjugation paradigm of every
godan, ichidan, kuru verb and i/na adjective, in kanji, hiragana, katakana
and romaji.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(&cfg.Log)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// Show help if no subcommand provided
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(errOut, "Error showing help: %v\n", err)
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file (default $"+config.ConfigFileEnv+")")

	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(conjugateCmd(a))
	rootCmd.AddCommand(normalizeCmd(a))
	rootCmd.AddCommand(versionCmd(a))
	return rootCmd
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jmconj version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "jmconj %s\n", version)
		},
	}
}
