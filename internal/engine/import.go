package engine

import "typeset-cli/internal/model"

// ImportData is the external payload of a bulk import. Nil slices / pointers
// mean "field absent"; absent fields leave local state untouched.
type ImportData struct {
	Text    *string        `json:"text,omitempty"`
	Styles  []model.Style  `json:"styles,omitempty"`
	Folders []model.Folder `json:"folders,omitempty"`

	IgnoreLinePrefixes       []string `json:"ignoreLinePrefixes,omitempty"`
	IgnoreTags               []string `json:"ignoreTags,omitempty"`
	DefaultStyleID           *string  `json:"defaultStyleId,omitempty"`
	CurrentFolderTagPriority *bool    `json:"currentFolderTagPriority,omitempty"`
	TextScale                *int     `json:"textScale,omitempty"`
}

// ImportHasConflicts reports whether applying data would overwrite or shadow
// a style that exists locally under the same id. Callers prompt the user once
// per import when this is true; a declined import is simply not dispatched,
// leaving local data untouched.
func ImportHasConflicts(st State, data ImportData) bool {
	if len(data.Styles) == 0 {
		return false
	}
	local := make(map[string]bool, len(st.Styles))
	for _, s := range st.Styles {
		local[s.ID] = true
	}
	for _, s := range data.Styles {
		if local[s.ID] {
			return true
		}
	}
	return false
}

// applyImport merges data into st. Styles merge per id: the imported style
// wins iff its Edited timestamp is newer than the local one or the local
// style was never edited; otherwise the local style is kept. Styles present
// only locally survive; styles present only in the import are added. Folders
// and settings replace wholesale when present (normalization heals refs).
func applyImport(st State, data ImportData) State {
	if data.Text != nil {
		st.Text = *data.Text
	}
	if data.Folders != nil {
		st.Folders = append([]model.Folder(nil), data.Folders...)
	}
	if data.Styles != nil {
		st.Styles = mergeStyles(st.Styles, data.Styles)
	}
	if data.IgnoreLinePrefixes != nil {
		st.IgnoreLinePrefixes = compactList(data.IgnoreLinePrefixes)
	}
	if data.IgnoreTags != nil {
		st.IgnoreTags = compactList(data.IgnoreTags)
	}
	if data.DefaultStyleID != nil {
		st.DefaultStyleID = *data.DefaultStyleID
	}
	if data.CurrentFolderTagPriority != nil {
		st.CurrentFolderTagPriority = *data.CurrentFolderTagPriority
	}
	if data.TextScale != nil {
		st.TextScale = clampScale(*data.TextScale)
	}
	return st
}

func mergeStyles(local, incoming []model.Style) []model.Style {
	incomingByID := make(map[string]model.Style, len(incoming))
	for _, s := range incoming {
		incomingByID[s.ID] = s
	}
	out := make([]model.Style, 0, len(local)+len(incoming))
	seen := make(map[string]bool, len(local))
	for _, l := range local {
		seen[l.ID] = true
		in, ok := incomingByID[l.ID]
		if ok && (l.Edited == 0 || in.Edited > l.Edited) {
			out = append(out, in)
		} else {
			out = append(out, l)
		}
	}
	for _, s := range incoming {
		if !seen[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
