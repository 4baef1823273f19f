package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List logged insertions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadState(app)
			if err != nil {
				return err
			}
			ctx := context.Background()

			if clear {
				if err := s.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			}

			recs, err := s.RecentInsertions(ctx, limit)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, recs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max records (0 = all)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Drop the whole history")
	return cmd
}
