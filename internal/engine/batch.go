package engine

import "typeset-cli/internal/model"

// Batch is the resolved payload for one multi-bubble insertion: parallel
// texts and styles, one pair per stored selection that found a line. A zero
// Style (empty ID) means "use the service's default style".
type Batch struct {
	Texts  []string
	Styles []model.Style
}

// ResolveBatch maps the stored-selection queue to upcoming content lines.
// A forward cursor starts at currentLineIndex. A selection pinned to a
// content line via LineIndex uses that line directly (advancing the fallback
// cursor past it); otherwise the cursor scans to the next content line. When
// lines run out the batch is truncated — never padded with repeats.
//
// Style per text: the line's own resolved style wins, else the style captured
// on the selection, else currentStyle. With a text scale active every style
// is a scaled deep copy; registry entries are never mutated.
func (s State) ResolveBatch() Batch {
	var out Batch
	cursor := s.CurrentLineIndex
	for _, sel := range s.StoredSelections {
		var target *model.Line
		if sel.LineIndex != nil {
			i := *sel.LineIndex
			if i >= 0 && i < len(s.Lines) && !s.Lines[i].Ignore {
				ln := s.Lines[i]
				target = &ln
				if i >= cursor {
					cursor = i + 1
				}
			}
		}
		if target == nil {
			for cursor < len(s.Lines) {
				if !s.Lines[cursor].Ignore {
					ln := s.Lines[cursor]
					target = &ln
					cursor++
					break
				}
				cursor++
			}
		}
		if target == nil {
			break
		}

		style, ok := s.StyleByID(target.StyleID)
		if !ok {
			style, ok = s.StyleByID(sel.StyleID)
		}
		if !ok {
			style, _ = s.CurrentStyle()
		}
		if style.ID != "" && s.TextScale > 0 {
			style = ScaledStyle(style, s.TextScale)
		}
		out.Texts = append(out.Texts, target.Text)
		out.Styles = append(out.Styles, style)
	}
	return out
}

// NextLineAfterBatch returns the raw index of the first content line at or
// past the batch's end cursor, for advancing the cursor once an insertion
// succeeds. ok is false when the batch consumed the document.
func (s State) NextLineAfterBatch(consumed int) (int, bool) {
	cursor := s.CurrentLineIndex
	remaining := consumed
	for cursor < len(s.Lines) && remaining > 0 {
		if !s.Lines[cursor].Ignore {
			remaining--
		}
		cursor++
	}
	for i := cursor; i < len(s.Lines); i++ {
		if !s.Lines[i].Ignore {
			return i, true
		}
	}
	return 0, false
}

// ScaledStyle returns a deep copy of style with its font size (and non-zero
// leading) multiplied by percent/100. The input value is never modified.
func ScaledStyle(style model.Style, percent int) model.Style {
	out := style.Clone()
	if percent <= 0 || percent == 100 {
		return out
	}
	f := float64(percent) / 100
	out.TextProps.Size *= f
	if out.TextProps.Leading != 0 {
		out.TextProps.Leading *= f
	}
	return out
}
