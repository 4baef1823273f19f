package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"typeset-cli/internal/engine"
)

func newTextCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Manage the working script text",
	}

	set := &cobra.Command{
		Use:   "set [file]",
		Short: "Replace the working text from a file (or stdin with -)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			s, st, err := loadState(app)
			if err != nil {
				return err
			}
			st = engine.Reduce(st, engine.SetText{Text: string(data)}, time.Now())
			if err := s.SaveState(st); err != nil {
				return err
			}
			content := 0
			for _, ln := range st.Lines {
				if !ln.Ignore {
					content++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "text set: %d lines, %d content\n", len(st.Lines), content)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the working text",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(app)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), st.Text)
			return err
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}

func newLinesCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Show the resolved lines of the working text",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(app)
			if err != nil {
				return err
			}
			type row struct {
				Raw     int    `json:"raw"`
				Index   int    `json:"index,omitempty"`
				Text    string `json:"text"`
				StyleID string `json:"styleId,omitempty"`
				Style   string `json:"style,omitempty"`
				Ignore  bool   `json:"ignore,omitempty"`
				Last    bool   `json:"last,omitempty"`
				Current bool   `json:"current,omitempty"`
			}
			rows := []row{}
			for _, ln := range st.Lines {
				if ln.Ignore && !all {
					continue
				}
				r := row{
					Raw:     ln.RawIndex,
					Index:   ln.Index,
					Text:    ln.Text,
					StyleID: ln.StyleID,
					Ignore:  ln.Ignore,
					Last:    ln.Last,
					Current: ln.RawIndex == st.CurrentLineIndex,
				}
				if ln.Ignore {
					r.Text = ln.RawText
				}
				if s, ok := st.StyleByID(ln.StyleID); ok {
					r.Style = s.Name
				}
				rows = append(rows, r)
			}
			return writeOut(cmd, app, rows)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include ignored lines and page markers")
	return cmd
}
