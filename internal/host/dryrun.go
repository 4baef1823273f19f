package host

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"typeset-cli/internal/model"
)

// DryRun is a Service that validates every call and logs what a real editor
// bridge would have done. It is the default service for the CLI and the TUI
// when no editor is connected, and it doubles as the test seam: tests feed it
// a selection with SetSelection and assert on the recorded inserts.
type DryRun struct {
	log *zap.Logger

	mu        sync.Mutex
	selection *model.Selection
	inserted  []Insert
}

// Insert records one dry-run layer insertion.
type Insert struct {
	Text      string
	StyleID   string
	Selection model.Selection
}

// SimulatedSelection is the stand-in marquee the dry run centers layers in
// when no editor is connected to supply a real one.
func SimulatedSelection() model.Selection {
	return model.Selection{Left: 0, Top: 0, Width: 400, Height: 300}
}

func NewDryRun(log *zap.Logger) *DryRun {
	if log == nil {
		log = zap.NewNop()
	}
	return &DryRun{log: log}
}

// SetSelection installs (or with nil clears) the simulated active selection.
func (d *DryRun) SetSelection(sel *model.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sel == nil {
		d.selection = nil
		return
	}
	s := *sel
	d.selection = &s
}

// Inserts returns a copy of every insertion recorded so far.
func (d *DryRun) Inserts() []Insert {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Insert(nil), d.inserted...)
}

func (d *DryRun) CurrentSelection(ctx context.Context) (model.Selection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selection == nil {
		return model.Selection{}, ErrNoSelection
	}
	return *d.selection, nil
}

func (d *DryRun) CreateTextLayerInSelection(ctx context.Context, text string, style model.Style, pointText bool) error {
	if text == "" {
		return ErrNoText
	}
	sel, err := d.CurrentSelection(ctx)
	if err != nil {
		return err
	}
	if sel.Area() < MinSelectionArea {
		return ErrSmallSelection
	}
	d.record(text, style, sel)
	d.log.Info("create text layer",
		zap.String("text", text),
		zap.String("style", style.Name),
		zap.Bool("pointText", pointText),
		zap.Float64("x", sel.XMid()),
		zap.Float64("y", sel.YMid()))
	return nil
}

func (d *DryRun) CreateTextLayersInStoredSelections(ctx context.Context, sels []model.Selection, texts []string, styles []model.Style) (int, error) {
	if len(texts) == 0 {
		return 0, ErrNoText
	}
	n := 0
	for i, text := range texts {
		if i >= len(sels) {
			break
		}
		var style model.Style
		if i < len(styles) {
			style = styles[i]
		}
		d.record(text, style, sels[i])
		d.log.Info("create text layer (batch)",
			zap.Int("index", i),
			zap.String("text", text),
			zap.String("style", style.Name),
			zap.Float64("x", sels[i].XMid()),
			zap.Float64("y", sels[i].YMid()))
		n++
	}
	return n, nil
}

func (d *DryRun) AlignTextLayerToSelection(ctx context.Context) error {
	sel, err := d.CurrentSelection(ctx)
	if err != nil {
		return err
	}
	d.log.Info("align active layer", zap.Float64("x", sel.XMid()), zap.Float64("y", sel.YMid()))
	return nil
}

func (d *DryRun) SetActiveLayerText(ctx context.Context, text string, style model.Style) error {
	if text == "" {
		return ErrNoText
	}
	d.log.Info("set active layer text", zap.String("text", text), zap.String("style", style.Name))
	return nil
}

func (d *DryRun) record(text string, style model.Style, sel model.Selection) {
	d.mu.Lock()
	d.inserted = append(d.inserted, Insert{Text: text, StyleID: style.ID, Selection: sel})
	d.mu.Unlock()
}
