// Package tui is the interactive front end: the script pane on the left, the
// style registry on the right, and the dry-run insertion flow wired through
// the host service.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"typeset-cli/internal/engine"
	"typeset-cli/internal/host"
	"typeset-cli/internal/model"
	"typeset-cli/internal/store"
)

type focusArea int

const (
	focusLines focusArea = iota
	focusStyles
)

type uiMode int

const (
	modeBrowse uiMode = iota
	modeEdit
	modeHelp
)

type selectionCapturedMsg struct{ sel model.Selection }

// insertDoneMsg reports a finished (async) insertion. seq is checked against
// the model's counter so a completion that raced a text edit can't move the
// cursor off the wrong line.
type insertDoneMsg struct {
	seq   int
	count int
	err   error
}

type appModel struct {
	store *store.Store
	log   *zap.Logger
	st    engine.State

	svc      *host.DryRun
	monitor  *host.Monitor
	captures chan model.Selection

	width  int
	height int
	mode   uiMode
	focus  focusArea

	editor     textarea.Model
	stylesList list.Model
	helpView   viewport.Model

	insertSeq int
	status    string
}

func Run(s *store.Store, st engine.State, log *zap.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(s, st, log)
	defer m.monitor.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newAppModel(s *store.Store, st engine.State, log *zap.Logger) appModel {
	if log == nil {
		log = zap.NewNop()
	}
	svc := host.NewDryRun(log)

	m := appModel{
		store:    s,
		log:      log,
		st:       st,
		svc:      svc,
		captures: make(chan model.Selection, 8),
	}
	m.monitor = host.NewMonitor(svc, 0, log, func(sel model.Selection) {
		select {
		case m.captures <- sel:
		default: // drop rather than stall the poll loop
		}
	})
	if st.MultiBubbleMode {
		m.monitor.Start()
	}

	m.editor = textarea.New()
	m.editor.Placeholder = "Paste the translated script here…"
	m.editor.CharLimit = 0

	m.stylesList = list.New(nil, newStyleDelegate(), 0, 0)
	m.stylesList.Title = "Styles"
	m.stylesList.SetShowHelp(false)
	m.stylesList.SetShowStatusBar(false)
	m.stylesList.DisableQuitKeybindings()

	m.helpView = viewport.New(0, 0)
	m.refreshStyles()
	return m
}

func (m appModel) Init() tea.Cmd { return listenCaptures(m.captures) }

func listenCaptures(ch <-chan model.Selection) tea.Cmd {
	return func() tea.Msg {
		sel, ok := <-ch
		if !ok {
			return nil
		}
		return selectionCapturedMsg{sel: sel}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case selectionCapturedMsg:
		if m.st.MultiBubbleMode {
			m.dispatch(engine.AddSelection{Selection: msg.sel})
			m.status = fmt.Sprintf("selection stored (%d queued)", len(m.st.StoredSelections))
		}
		return m, listenCaptures(m.captures)

	case insertDoneMsg:
		if msg.seq != m.insertSeq {
			return m, nil // text changed while the insert was in flight
		}
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.count > 1 {
			if idx, ok := m.st.NextLineAfterBatch(msg.count); ok {
				m.dispatch(engine.SetCurrentLineIndex{Index: idx})
			}
			m.dispatch(engine.ClearSelections{})
			m.monitor.Reset()
			m.status = fmt.Sprintf("inserted %d layers", msg.count)
		} else {
			m.dispatch(engine.NextLine{AutoAdvance: true})
			m.status = "inserted"
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeHelp:
			return m.updateHelp(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.save()
		return m, tea.Quit

	case "?":
		m.mode = modeHelp
		m.helpView.SetContent(renderMarkdown(helpMarkdown(), m.helpView.Width))
		m.helpView.GotoTop()
		return m, nil

	case "e":
		m.mode = modeEdit
		m.editor.SetValue(m.st.Text)
		return m, m.editor.Focus()

	case "tab":
		if m.focus == focusLines {
			m.focus = focusStyles
		} else {
			m.focus = focusLines
		}
		return m, nil

	case "j", "down":
		if m.focus == focusLines {
			m.dispatch(engine.NextLine{})
			return m, nil
		}

	case "k", "up":
		if m.focus == focusLines {
			m.dispatch(engine.PrevLine{})
			return m, nil
		}

	case "g":
		m.dispatch(engine.NextPage{})
		return m, nil

	case "enter":
		if m.focus == focusStyles {
			if it, ok := m.stylesList.SelectedItem().(styleItem); ok {
				m.dispatch(engine.SetCurrentStyleID{ID: it.style.ID})
				m.status = "current style: " + it.style.Name
			}
			return m, nil
		}
		return m.startInsert()

	case "i":
		return m.startInsert()

	case "B":
		return m.startBatchInsert()

	case "b":
		m.dispatch(engine.SetMultiBubbleMode{Value: !m.st.MultiBubbleMode})
		if m.st.MultiBubbleMode {
			m.monitor.Start()
			m.status = "multi-bubble armed"
		} else {
			m.monitor.Stop()
			m.monitor.Reset()
			m.status = "multi-bubble off"
		}
		return m, nil

	case "x":
		m.dispatch(engine.ClearSelections{})
		m.monitor.Reset()
		m.status = "selection queue cleared"
		return m, nil

	case "D":
		if it, ok := m.stylesList.SelectedItem().(styleItem); ok {
			m.dispatch(engine.SetDefaultStyleID{ID: it.style.ID})
			m.status = "default style: " + it.style.Name
		}
		return m, nil

	case "p":
		if it, ok := m.stylesList.SelectedItem().(styleItem); ok {
			m.dispatch(engine.ToggleStylePrefixes{ID: it.style.ID})
		}
		return m, nil

	case "+":
		scale := m.st.TextScale
		if scale == 0 {
			scale = 100
		}
		m.dispatch(engine.SetTextScale{Scale: scale + m.st.TextSizeIncrement})
		return m, nil

	case "-":
		scale := m.st.TextScale
		if scale == 0 {
			scale = 100
		}
		m.dispatch(engine.SetTextScale{Scale: scale - m.st.TextSizeIncrement})
		return m, nil
	}

	if m.focus == focusStyles {
		var cmd tea.Cmd
		m.stylesList, cmd = m.stylesList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.editor.Blur()
		m.insertSeq++ // invalidate in-flight insertions against the old text
		m.dispatch(engine.SetText{Text: m.editor.Value()})
		m.status = "text updated"
		return m, nil
	case "ctrl+c":
		m.save()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m *appModel) startInsert() (tea.Model, tea.Cmd) {
	cur, ok := m.st.CurrentLine()
	if !ok {
		m.status = "no line to insert"
		return *m, nil
	}
	style, _ := m.st.CurrentStyle()
	if m.st.TextScale > 0 && style.ID != "" {
		style = engine.ScaledStyle(style, m.st.TextScale)
	}
	m.insertSeq++
	seq := m.insertSeq
	svc, s, pointText := m.svc, m.store, m.st.PastePointText
	return *m, func() tea.Msg {
		ctx := context.Background()
		sel := host.SimulatedSelection()
		svc.SetSelection(&sel)
		if err := svc.CreateTextLayerInSelection(ctx, cur.Text, style, pointText); err != nil {
			return insertDoneMsg{seq: seq, err: err}
		}
		err := s.AppendInsertions(ctx, []store.InsertionRecord{{
			LineIndex: cur.RawIndex,
			Text:      cur.Text,
			StyleID:   style.ID,
			StyleName: style.Name,
			BatchSize: 1,
		}})
		return insertDoneMsg{seq: seq, count: 1, err: err}
	}
}

func (m *appModel) startBatchInsert() (tea.Model, tea.Cmd) {
	if len(m.st.StoredSelections) == 0 {
		m.status = "no stored selections"
		return *m, nil
	}
	resolved := m.st.ResolveBatch()
	if len(resolved.Texts) == 0 {
		m.status = "no lines left for the queue"
		return *m, nil
	}
	m.insertSeq++
	seq := m.insertSeq
	svc, s, sels := m.svc, m.store, m.st.StoredSelections
	return *m, func() tea.Msg {
		ctx := context.Background()
		n, err := svc.CreateTextLayersInStoredSelections(ctx, sels, resolved.Texts, resolved.Styles)
		if err != nil {
			return insertDoneMsg{seq: seq, err: err}
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
		return insertDoneMsg{seq: seq, count: n, err: s.AppendInsertions(ctx, recs)}
	}
}

// dispatch runs one reducer step and persists the result best-effort.
func (m *appModel) dispatch(cmd engine.Command) {
	m.st = engine.Reduce(m.st, cmd, time.Now())
	m.refreshStyles()
	m.save()
}

func (m *appModel) save() {
	if err := m.store.SaveState(m.st); err != nil {
		m.log.Warn("save state", zap.Error(err))
	}
}

func (m *appModel) refreshStyles() {
	curID := ""
	if it, ok := m.stylesList.SelectedItem().(styleItem); ok {
		curID = it.style.ID
	}
	folderName := map[string]string{}
	for _, f := range m.st.Folders {
		folderName[f.ID] = f.Name
	}
	items := make([]list.Item, 0, len(m.st.Styles))
	sel := 0
	for i, s := range m.st.Styles {
		if s.ID == curID {
			sel = i
		}
		items = append(items, styleItem{
			style:   s,
			folder:  folderName[s.Folder],
			current: s.ID == m.st.CurrentStyleID,
			def:     s.ID == m.st.DefaultStyleID,
		})
	}
	m.stylesList.SetItems(items)
	if curID != "" {
		m.stylesList.Select(sel)
	}
}

func (m *appModel) resize() {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	right := m.width / 3
	if right < 28 {
		right = 28
	}
	left := m.width - right - 2
	if left < 30 {
		left = 30
	}
	m.stylesList.SetSize(right, h)
	m.editor.SetWidth(m.width - 4)
	m.editor.SetHeight(h)
	m.helpView.Width = m.width - 8
	m.helpView.Height = h
}

func helpMarkdown() string {
	return strings.TrimSpace(`
# Keys

- **j / k** move the line cursor, **g** next page
- **tab** switch between lines and styles, **enter** pick style / insert
- **i** insert current line, **B** insert the stored-selection batch
- **b** toggle multi-bubble mode, **x** clear the selection queue
- **D** set default style, **p** toggle a style's prefixes
- **+ / -** adjust the text scale
- **e** edit the script text (esc applies), **q** quit

Run ` + "`typeset docs`" + ` for the prefix, line and batch guides.
`)
}
