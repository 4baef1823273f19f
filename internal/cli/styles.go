package cli

import (
	"github.com/spf13/cobra"

	"typeset-cli/internal/foldertree"
	"typeset-cli/internal/model"
)

func newStylesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the style registry in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(app)
			if err != nil {
				return err
			}

			folderName := map[string]string{}
			for _, f := range st.Folders {
				folderName[f.ID] = f.Name
			}

			type row struct {
				ID       string   `json:"id"`
				Name     string   `json:"name"`
				Folder   string   `json:"folder,omitempty"`
				Prefixes []string `json:"prefixes,omitempty"`
				Disabled bool     `json:"prefixesDisabled,omitempty"`
				Font     string   `json:"font,omitempty"`
				Size     float64  `json:"size,omitempty"`
				Default  bool     `json:"default,omitempty"`
				Current  bool     `json:"current,omitempty"`
			}
			rows := make([]row, 0, len(st.Styles))
			for _, s := range st.Styles {
				rows = append(rows, row{
					ID:       s.ID,
					Name:     s.Name,
					Folder:   folderName[s.Folder],
					Prefixes: s.Prefixes,
					Disabled: s.PrefixesDisabled,
					Font:     s.TextProps.FontName,
					Size:     s.TextProps.Size,
					Default:  s.ID == st.DefaultStyleID,
					Current:  s.ID == st.CurrentStyleID,
				})
			}
			return writeOut(cmd, app, rows)
		},
	}

	cmd.AddCommand(newFoldersCmd(app))
	return cmd
}

func newFoldersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List the folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(app)
			if err != nil {
				return err
			}
			type row struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Parent string `json:"parent,omitempty"`
				Depth  int    `json:"depth"`
				Styles int    `json:"styles"`
			}
			count := map[string]int{}
			for _, s := range st.Styles {
				count[s.Folder]++
			}
			rows := make([]row, 0, len(st.Folders))
			foldertree.Walk(st.Folders, func(f model.Folder, depth int) {
				rows = append(rows, row{ID: f.ID, Name: f.Name, Parent: f.ParentID, Depth: depth, Styles: count[f.ID]})
			})
			return writeOut(cmd, app, rows)
		},
	}
}
