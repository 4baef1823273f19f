package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"typeset-cli/internal/engine"
	"typeset-cli/internal/store"
	"typeset-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "typeset",
		Short:        "Comic/manga typesetting assistant: resolve script lines to text styles",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  typeset

  # Scriptable commands
  typeset lines
  typeset text set script.txt
  typeset styles
  typeset export styles.json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TYPESET_DIR", ""), "Path to data dir (default: per-user config dir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(newTextCmd(app))
	cmd.AddCommand(newLinesCmd(app))
	cmd.AddCommand(newStylesCmd(app))
	cmd.AddCommand(newInsertCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, st, err := loadState(app)
	if err != nil {
		return err
	}
	return tui.Run(s, st, app.logger())
}

func loadState(app *App) (*store.Store, engine.State, error) {
	s, err := store.Open(app.Dir)
	if err != nil {
		return nil, engine.State{}, err
	}
	st, _ := s.LoadState()
	return s, st, nil
}

func (app *App) logger() *zap.Logger {
	level := zapcore.InfoLevel
	if app.Verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
