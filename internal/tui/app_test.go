package tui

import (
	"strings"
	"testing"
	"time"

	"typeset-cli/internal/engine"
	"typeset-cli/internal/model"
	"typeset-cli/internal/store"
)

func testModel(t *testing.T, st engine.State) appModel {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := newAppModel(s, st, nil)
	m.width = 100
	m.height = 30
	m.resize()
	return m
}

func TestStyleItemStrings(t *testing.T) {
	it := styleItem{
		style:   model.Style{Name: "Hero", Prefixes: []string{"H:"}},
		folder:  "Main",
		current: true,
		def:     true,
	}
	if got := it.Title(); !strings.Contains(got, "Hero") || !strings.Contains(got, "(default)") {
		t.Fatalf("title: %q", got)
	}
	if got := it.Description(); !strings.Contains(got, "Main") || !strings.Contains(got, "H:") {
		t.Fatalf("description: %q", got)
	}

	unsorted := styleItem{style: model.Style{Name: "Plain"}}
	if got := unsorted.Description(); got != "unsorted" {
		t.Fatalf("unsorted description: %q", got)
	}
}

func TestLinesViewShowsCursorAndIgnored(t *testing.T) {
	st := engine.NewState()
	st = engine.Reduce(st, engine.SetText{Text: "first\n## note\nsecond"}, time.Now())
	m := testModel(t, st)

	view := m.linesView()
	if !strings.Contains(view, "first") || !strings.Contains(view, "second") {
		t.Fatalf("content lines missing:\n%s", view)
	}
	if !strings.Contains(view, "▸") {
		t.Fatalf("cursor marker missing:\n%s", view)
	}
	if !strings.Contains(view, "## note") {
		t.Fatalf("ignored line should render raw:\n%s", view)
	}
}

func TestHeaderReportsQueueAndScale(t *testing.T) {
	st := engine.NewState()
	st = engine.Reduce(st, engine.SetText{Text: "a\nb"}, time.Now())
	st = engine.Reduce(st, engine.SetTextScale{Scale: 150}, time.Now())
	st = engine.Reduce(st, engine.SetMultiBubbleMode{Value: true}, time.Now())
	st = engine.Reduce(st, engine.AddSelection{Selection: model.Selection{Width: 50, Height: 50}}, time.Now())
	m := testModel(t, st)
	m.monitor.Stop()

	h := m.header()
	if !strings.Contains(h, "scale 150%") {
		t.Fatalf("scale missing: %q", h)
	}
	if !strings.Contains(h, "multi-bubble (1 queued)") {
		t.Fatalf("queue missing: %q", h)
	}
}

func TestStaleInsertCompletionIsIgnored(t *testing.T) {
	st := engine.NewState()
	st = engine.Reduce(st, engine.SetText{Text: "one\ntwo"}, time.Now())
	m := testModel(t, st)
	m.insertSeq = 3

	updated, _ := m.Update(insertDoneMsg{seq: 2, count: 1})
	got := updated.(appModel)
	if cur, _ := got.st.CurrentLine(); cur.Text != "one" {
		t.Fatalf("stale completion moved the cursor to %q", cur.Text)
	}

	updated, _ = m.Update(insertDoneMsg{seq: 3, count: 1})
	got = updated.(appModel)
	if cur, _ := got.st.CurrentLine(); cur.Text != "two" {
		t.Fatalf("fresh completion should advance, cursor on %q", cur.Text)
	}
}

func TestCaptureMessageQueuesSelection(t *testing.T) {
	st := engine.NewState()
	st = engine.Reduce(st, engine.SetMultiBubbleMode{Value: true}, time.Now())
	m := testModel(t, st)
	m.monitor.Stop()

	sel := model.Selection{Left: 1, Top: 2, Width: 100, Height: 100}
	updated, _ := m.Update(selectionCapturedMsg{sel: sel})
	got := updated.(appModel)
	if len(got.st.StoredSelections) != 1 {
		t.Fatalf("selection not queued: %+v", got.st.StoredSelections)
	}

	// Captures arriving after the mode was switched off are dropped.
	got.st = engine.Reduce(got.st, engine.SetMultiBubbleMode{Value: false}, time.Now())
	updated, _ = got.Update(selectionCapturedMsg{sel: sel})
	got = updated.(appModel)
	if len(got.st.StoredSelections) != 0 {
		t.Fatalf("capture applied while mode off: %+v", got.st.StoredSelections)
	}
}
