package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"typeset-cli/internal/engine"
	"typeset-cli/internal/host"
	"typeset-cli/internal/store"
)

// newInsertCmd typesets against the dry-run host service: it resolves exactly
// what a connected editor would receive and logs it, advancing the cursor and
// the history the same way the TUI does.
func newInsertCmd(app *App) *cobra.Command {
	var batch bool
	var point bool

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Resolve the current line (or the stored-selection batch) and log the insertion",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := loadState(app)
			if err != nil {
				return err
			}
			log := app.logger()
			defer func() { _ = log.Sync() }()
			svc := host.NewDryRun(log)
			ctx := context.Background()
			now := time.Now()

			if batch {
				return runBatchInsert(cmd, app, s, st, svc, ctx, now)
			}

			cur, ok := st.CurrentLine()
			if !ok {
				return host.ErrNoText
			}
			style, _ := st.CurrentStyle()
			if st.TextScale > 0 && style.ID != "" {
				style = engine.ScaledStyle(style, st.TextScale)
			}
			sel := host.SimulatedSelection()
			svc.SetSelection(&sel)
			if err := svc.CreateTextLayerInSelection(ctx, cur.Text, style, st.PastePointText || point); err != nil {
				return err
			}
			if err := s.AppendInsertions(ctx, []store.InsertionRecord{{
				LineIndex: cur.RawIndex,
				Text:      cur.Text,
				StyleID:   style.ID,
				StyleName: style.Name,
				BatchSize: 1,
			}}); err != nil {
				return err
			}

			st = engine.Reduce(st, engine.NextLine{AutoAdvance: true}, now)
			if err := s.SaveState(st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted line %d (%s)\n", cur.Index, style.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "Insert into every stored selection (multi-bubble)")
	cmd.Flags().BoolVar(&point, "point", false, "Insert point text instead of a paragraph box")
	return cmd
}

func runBatchInsert(cmd *cobra.Command, app *App, s *store.Store, st engine.State, svc *host.DryRun, ctx context.Context, now time.Time) error {
	if len(st.StoredSelections) == 0 {
		return host.ErrNoSelection
	}
	resolved := st.ResolveBatch()
	if len(resolved.Texts) == 0 {
		return host.ErrNoText
	}

	n, err := svc.CreateTextLayersInStoredSelections(ctx, st.StoredSelections, resolved.Texts, resolved.Styles)
	if err != nil {
		return err
	}

	recs := make([]store.InsertionRecord, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, store.InsertionRecord{
			Text:      resolved.Texts[i],
			StyleID:   resolved.Styles[i].ID,
			StyleName: resolved.Styles[i].Name,
			BatchSize: n,
		})
	}
	if err := s.AppendInsertions(ctx, recs); err != nil {
		return err
	}

	if idx, ok := st.NextLineAfterBatch(n); ok {
		st = engine.Reduce(st, engine.SetCurrentLineIndex{Index: idx}, now)
	}
	st = engine.Reduce(st, engine.ClearSelections{}, now)
	if err := s.SaveState(st); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d layers\n", n)
	return nil
}
