package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"typeset-cli/internal/engine"
)

// newConfigCmd exposes the resolution settings. `config` alone prints them;
// flags apply the corresponding reducer commands.
func newConfigCmd(app *App) *cobra.Command {
	var (
		ignorePrefixes string
		ignoreTags     string
		defaultStyle   string
		folderPriority string
		scale          int
		increment      int
		pointText      string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change resolution settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := loadState(app)
			if err != nil {
				return err
			}
			now := time.Now()
			changed := false

			if cmd.Flags().Changed("ignore-prefixes") {
				st = engine.Reduce(st, engine.SetIgnoreLinePrefixes{Prefixes: engine.ParsePrefixList(ignorePrefixes)}, now)
				changed = true
			}
			if cmd.Flags().Changed("ignore-tags") {
				st = engine.Reduce(st, engine.SetIgnoreTags{Tags: engine.ParsePrefixList(ignoreTags)}, now)
				changed = true
			}
			if cmd.Flags().Changed("default-style") {
				st = engine.Reduce(st, engine.SetDefaultStyleID{ID: defaultStyle}, now)
				changed = true
			}
			if cmd.Flags().Changed("folder-priority") {
				st = engine.Reduce(st, engine.SetCurrentFolderTagPriority{Value: parseBoolFlag(folderPriority)}, now)
				changed = true
			}
			if cmd.Flags().Changed("scale") {
				st = engine.Reduce(st, engine.SetTextScale{Scale: scale}, now)
				changed = true
			}
			if cmd.Flags().Changed("increment") {
				st = engine.Reduce(st, engine.SetTextSizeIncrement{Increment: increment}, now)
				changed = true
			}
			if cmd.Flags().Changed("point-text") {
				st.PastePointText = parseBoolFlag(pointText)
				st = engine.Init(st)
				changed = true
			}

			if changed {
				if err := s.SaveState(st); err != nil {
					return err
				}
			}

			return writeOut(cmd, app, map[string]any{
				"ignoreLinePrefixes":       st.IgnoreLinePrefixes,
				"ignoreTags":               st.IgnoreTags,
				"defaultStyleId":           st.DefaultStyleID,
				"currentFolderTagPriority": st.CurrentFolderTagPriority,
				"textScale":                st.TextScale,
				"textSizeIncrement":        st.TextSizeIncrement,
				"pastePointText":           st.PastePointText,
			})
		},
	}

	cmd.Flags().StringVar(&ignorePrefixes, "ignore-prefixes", "", "Ignore-line prefixes, separated by ; or newlines")
	cmd.Flags().StringVar(&ignoreTags, "ignore-tags", "", "Ignore tags stripped anywhere in a line, separated by ; or newlines")
	cmd.Flags().StringVar(&defaultStyle, "default-style", "", "Style id applied to unprefixed lines (empty clears)")
	cmd.Flags().StringVar(&folderPriority, "folder-priority", "", "Prefer prefixes from the current style's folder (true|false)")
	cmd.Flags().IntVar(&scale, "scale", 0, "Global text scale percent (0 = off)")
	cmd.Flags().IntVar(&increment, "increment", 1, "Text size adjustment step")
	cmd.Flags().StringVar(&pointText, "point-text", "", "Insert point text instead of paragraph boxes (true|false)")
	return cmd
}

func parseBoolFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
