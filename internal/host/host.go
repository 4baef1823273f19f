// Package host abstracts the image editor the resolved lines are typeset
// into. The engine never talks to the editor directly; everything crosses
// this boundary so the whole pipeline runs (and is tested) against a dry-run
// implementation.
package host

import (
	"context"
	"errors"

	"typeset-cli/internal/model"
)

// MinSelectionArea is the smallest selection (in square pixels) worth
// inserting a text layer into. Anything smaller is almost certainly a stray
// marquee click.
const MinSelectionArea = 200

var (
	// ErrNoSelection means the editor has no active marquee selection.
	ErrNoSelection = errors.New("no active selection")
	// ErrSmallSelection means the active selection is under MinSelectionArea.
	ErrSmallSelection = errors.New("selection too small")
	// ErrNoText means there was nothing to insert for the requested operation.
	ErrNoText = errors.New("no text to insert")
)

// Service is the editor-side contract. Implementations are expected to be
// safe for use from a single goroutine; the selection monitor serializes its
// own polling.
type Service interface {
	// CurrentSelection returns the active selection bounds, or ErrNoSelection.
	CurrentSelection(ctx context.Context) (model.Selection, error)

	// CreateTextLayerInSelection typesets text as a new layer centered in the
	// active selection. pointText inserts a point-text layer instead of a
	// paragraph box sized to the selection.
	CreateTextLayerInSelection(ctx context.Context, text string, style model.Style, pointText bool) error

	// CreateTextLayersInStoredSelections typesets one layer per stored
	// selection; texts and styles are parallel to sels. It returns how many
	// layers were created before the first failure.
	CreateTextLayersInStoredSelections(ctx context.Context, sels []model.Selection, texts []string, styles []model.Style) (int, error)

	// AlignTextLayerToSelection recenters the active text layer inside the
	// active selection.
	AlignTextLayerToSelection(ctx context.Context) error

	// SetActiveLayerText replaces the text contents of the active layer.
	SetActiveLayerText(ctx context.Context, text string, style model.Style) error
}
