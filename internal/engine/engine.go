// Package engine is the line/style resolution core: a synchronous reducer
// over immutable state snapshots. Raw pasted text, the style registry and the
// folder forest flow in; typed lines, a cursor and resolved styles flow out.
// The entire derived state is recomputed from scratch on every command —
// documents are short dialogue scripts, so full recompute beats incremental
// bookkeeping.
package engine

import (
	"time"

	"typeset-cli/internal/foldertree"
	"typeset-cli/internal/model"
)

// State is one committed snapshot. Reduce never mutates its receiver inputs;
// collections are copied before modification so readers only ever observe
// committed snapshots.
type State struct {
	Text    string         `json:"text"`
	Styles  []model.Style  `json:"styles"`
	Folders []model.Folder `json:"folders"`

	CurrentLineIndex int    `json:"currentLineIndex"`
	CurrentStyleID   string `json:"currentStyleId,omitempty"`

	IgnoreLinePrefixes       []string `json:"ignoreLinePrefixes"`
	IgnoreTags               []string `json:"ignoreTags,omitempty"`
	DefaultStyleID           string   `json:"defaultStyleId,omitempty"`
	CurrentFolderTagPriority bool     `json:"currentFolderTagPriority"`

	TextScale         int  `json:"textScale,omitempty"` // percent; 0 = off
	TextSizeIncrement int  `json:"textSizeIncrement,omitempty"`
	PastePointText    bool `json:"pastePointText,omitempty"`

	Images []string `json:"images,omitempty"`

	StoredSelections []model.Selection `json:"storedSelections,omitempty"`
	MultiBubbleMode  bool              `json:"multiBubbleMode,omitempty"`

	// Derived on every pass; never persisted.
	Lines []model.Line `json:"-"`
}

// NewState returns the initial state with the stock ignore prefix.
func NewState() State {
	return State{
		IgnoreLinePrefixes:       []string{"##"},
		CurrentFolderTagPriority: true,
		TextSizeIncrement:        1,
	}
}

// CurrentLine returns the line under the cursor. After any settled transition
// it is never an ignored line while content exists.
func (s State) CurrentLine() (model.Line, bool) {
	if s.CurrentLineIndex < 0 || s.CurrentLineIndex >= len(s.Lines) {
		return model.Line{}, false
	}
	return s.Lines[s.CurrentLineIndex], true
}

func (s State) StyleByID(id string) (model.Style, bool) {
	if id == "" {
		return model.Style{}, false
	}
	for _, st := range s.Styles {
		if st.ID == id {
			return st, true
		}
	}
	return model.Style{}, false
}

func (s State) CurrentStyle() (model.Style, bool) {
	return s.StyleByID(s.CurrentStyleID)
}

func (s State) FolderByID(id string) (model.Folder, bool) {
	if id == "" {
		return model.Folder{}, false
	}
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return model.Folder{}, false
}

// Reduce applies one command and re-derives everything. Expected odd states
// (missing line, unknown id, empty queue) no-op or degrade; Reduce never
// panics or errors on user data.
func Reduce(st State, cmd Command, now time.Time) State {
	next := st
	reresolveStyle := false

	switch c := cmd.(type) {
	case SetText:
		next.Text = c.Text

	case SetCurrentLineIndex:
		next.CurrentLineIndex = c.Index
		reresolveStyle = true

	case PrevLine:
		if st.Text == "" {
			break
		}
		for i := st.CurrentLineIndex - 1; i >= 0 && i < len(st.Lines); i-- {
			if !st.Lines[i].Ignore {
				next.CurrentLineIndex = st.Lines[i].RawIndex
				break
			}
		}
		reresolveStyle = true

	case NextLine:
		if st.Text == "" {
			break
		}
		if cur, ok := st.CurrentLine(); ok && c.AutoAdvance && cur.Last {
			break
		}
		for i := st.CurrentLineIndex + 1; i < len(st.Lines); i++ {
			if !st.Lines[i].Ignore {
				next.CurrentLineIndex = st.Lines[i].RawIndex
				break
			}
		}
		reresolveStyle = true

	case NextPage:
		if idx, ok := nextPageLineIndex(st.Lines, st.CurrentLineIndex); ok {
			next.CurrentLineIndex = idx
			reresolveStyle = true
		}

	case SetCurrentStyleID:
		next.CurrentStyleID = c.ID

	case SaveFolder:
		next = saveFolder(next, c)
	case DeleteFolder:
		next = deleteFolder(next, c)
	case DuplicateFolder:
		next = duplicateFolder(next, c)
	case ReorderFolders:
		next = reorderFolders(next, c)

	case SaveStyle:
		next = saveStyle(next, c, now)
	case DeleteStyle:
		next = deleteStyle(next, c)
	case DuplicateStyle:
		next = duplicateStyle(next, c, now)
	case ToggleStylePrefixes:
		next = toggleStylePrefixes(next, c)
	case SetStyles:
		next.Styles = append([]model.Style(nil), c.Styles...)
	case ReorderStyles:
		next = reorderStyles(next, c)

	case SetIgnoreLinePrefixes:
		next.IgnoreLinePrefixes = compactList(c.Prefixes)
	case SetIgnoreTags:
		next.IgnoreTags = compactList(c.Tags)
	case SetDefaultStyleID:
		next.DefaultStyleID = c.ID
	case SetCurrentFolderTagPriority:
		next.CurrentFolderTagPriority = c.Value
	case SetTextScale:
		next.TextScale = clampScale(c.Scale)
	case SetTextSizeIncrement:
		next.TextSizeIncrement = clampIncrement(c.Increment)
	case SetImages:
		next.Images = append([]string(nil), c.Paths...)

	case AddSelection:
		sel := c.Selection
		sel.StyleID = st.CurrentStyleID
		sel.CapturedAt = now.UnixMilli()
		next.StoredSelections = append(append([]model.Selection(nil), st.StoredSelections...), sel)
	case RemoveSelection:
		if c.Index >= 0 && c.Index < len(st.StoredSelections) {
			sels := append([]model.Selection(nil), st.StoredSelections...)
			next.StoredSelections = append(sels[:c.Index], sels[c.Index+1:]...)
		}
	case ClearSelections:
		next.StoredSelections = nil
	case SetMultiBubbleMode:
		next.MultiBubbleMode = c.Value
		if !c.Value {
			next.StoredSelections = nil
		}

	case Import:
		next = applyImport(next, c.Data)
	}

	return derive(st, next, reresolveStyle)
}

// derive re-derives everything that depends on text, styles, folders or
// settings, then settles the cursor and current style. prev is the committed
// snapshot the command started from: prefix-table folder scoping follows the
// style that was current before the command, matching how a translator works
// through neighboring bubbles of one speaker.
func derive(prev, next State, reresolveStyle bool) State {
	next.Folders = foldertree.Normalize(next.Folders)

	// Orphaned styles and a deleted default style self-heal; referential
	// damage is never surfaced as an error.
	folderIDs := make(map[string]bool, len(next.Folders))
	for _, f := range next.Folders {
		folderIDs[f.ID] = true
	}
	styles := append([]model.Style(nil), next.Styles...)
	for i := range styles {
		if styles[i].Folder != "" && !folderIDs[styles[i].Folder] {
			styles[i].Folder = ""
		}
	}
	next.Styles = orderStyles(styles, next.Folders)

	if next.DefaultStyleID != "" {
		if _, ok := next.StyleByID(next.DefaultStyleID); !ok {
			next.DefaultStyleID = ""
		}
	}

	currentFolder := ""
	if cs, ok := prev.CurrentStyle(); ok {
		currentFolder = cs.Folder
	}
	tables := buildPrefixTables(next.Styles, currentFolder)
	next.Lines = parseLines(next.Text, next.IgnoreLinePrefixes, next.IgnoreTags, tables, next.CurrentFolderTagPriority)

	// The cursor must not rest on an ignored line: snap forward to the first
	// content line, or to index 0 when none exists.
	if cur, ok := next.CurrentLine(); !ok || cur.Ignore {
		idx := 0
		for _, ln := range next.Lines {
			if !ln.Ignore {
				idx = ln.RawIndex
				break
			}
		}
		next.CurrentLineIndex = idx
	}

	if reresolveStyle {
		if cur, ok := next.CurrentLine(); ok && cur.StyleID != "" {
			next.CurrentStyleID = cur.StyleID
		} else if next.DefaultStyleID != "" {
			next.CurrentStyleID = next.DefaultStyleID
		}
	}

	// A deleted current style falls back to the first style in registry order.
	if _, ok := next.CurrentStyle(); !ok {
		if len(next.Styles) > 0 {
			next.CurrentStyleID = next.Styles[0].ID
		} else {
			next.CurrentStyleID = ""
		}
	}

	return next
}

// Init derives the initial lines/cursor for a freshly loaded state without
// applying a command (startup after the snapshot is read).
func Init(st State) State {
	return derive(st, st, false)
}

func nextPageLineIndex(lines []model.Line, from int) (int, bool) {
	marker := -1
	for i := from + 1; i < len(lines); i++ {
		if isPageMarker(lines[i].RawText) {
			marker = i
			break
		}
	}
	if marker == -1 {
		return 0, false
	}
	for i := marker + 1; i < len(lines); i++ {
		if !lines[i].Ignore {
			return i, true
		}
	}
	return 0, false
}

func clampScale(scale int) int {
	if scale <= 0 {
		return 0
	}
	if scale < 1 {
		return 1
	}
	if scale > 999 {
		return 999
	}
	return scale
}

func clampIncrement(inc int) int {
	if inc < 1 {
		return 1
	}
	if inc > 99 {
		return 99
	}
	return inc
}
