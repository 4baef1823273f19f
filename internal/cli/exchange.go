package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"typeset-cli/internal/engine"
	"typeset-cli/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write styles, folders and settings as shareable JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(app)
			if err != nil {
				return err
			}
			if err := store.WriteExport(args[0], store.ExportState(st)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d styles, %d folders to %s\n", len(st.Styles), len(st.Folders), args[0])
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge an exported JSON file into the local registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := loadState(app)
			if err != nil {
				return err
			}
			data, err := store.ReadImport(args[0])
			if err != nil {
				return err
			}

			if !force && engine.ImportHasConflicts(st, data) {
				fmt.Fprint(cmd.OutOrStdout(), "import touches styles that already exist locally; newer edits win. Continue? [y/N] ")
				r := bufio.NewReader(cmd.InOrStdin())
				line, _ := r.ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "import cancelled")
					return nil
				}
			}

			st = engine.Reduce(st, engine.Import{Data: data}, time.Now())
			if err := s.SaveState(st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported: %d styles, %d folders in registry\n", len(st.Styles), len(st.Folders))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Merge without prompting on conflicts")
	return cmd
}
