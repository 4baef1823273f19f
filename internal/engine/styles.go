package engine

import (
	"strings"
	"time"

	"typeset-cli/internal/foldertree"
	"typeset-cli/internal/model"
)

func saveStyle(st State, cmd SaveStyle, now time.Time) State {
	s := cmd.Style
	if s.ID == "" {
		s.ID = model.NewID()
	}
	s.Prefixes = compactList(s.Prefixes)
	s.Edited = now.UnixMilli()

	styles := append([]model.Style(nil), st.Styles...)
	updated := false
	for i := range styles {
		if styles[i].ID == s.ID {
			styles[i] = s
			updated = true
			break
		}
	}
	if !updated {
		styles = append(styles, s)
	}
	st.Styles = styles
	return st
}

func deleteStyle(st State, cmd DeleteStyle) State {
	styles := make([]model.Style, 0, len(st.Styles))
	for _, s := range st.Styles {
		if s.ID != cmd.ID {
			styles = append(styles, s)
		}
	}
	st.Styles = styles
	return st
}

func duplicateStyle(st State, cmd DuplicateStyle, now time.Time) State {
	id := cmd.ID
	if id == "" {
		id = st.CurrentStyleID
	}
	src, ok := st.StyleByID(id)
	if !ok {
		return st
	}
	dup := src.Clone()
	dup.ID = model.NewID()
	dup.Name = src.Name + " copy"
	dup.Edited = now.UnixMilli()
	st.Styles = append(append([]model.Style(nil), st.Styles...), dup)
	st.CurrentStyleID = dup.ID
	return st
}

func toggleStylePrefixes(st State, cmd ToggleStylePrefixes) State {
	styles := append([]model.Style(nil), st.Styles...)
	for i := range styles {
		if styles[i].ID == cmd.ID {
			styles[i].PrefixesDisabled = !styles[i].PrefixesDisabled
			break
		}
	}
	st.Styles = styles
	return st
}

func reorderStyles(st State, cmd ReorderStyles) State {
	inFolder := make(map[string]model.Style)
	rest := make([]model.Style, 0, len(st.Styles))
	for _, s := range st.Styles {
		if s.Folder == cmd.FolderID {
			inFolder[s.ID] = s
		} else {
			rest = append(rest, s)
		}
	}
	reordered := make([]model.Style, 0, len(inFolder))
	for _, id := range cmd.IDs {
		if s, ok := inFolder[id]; ok {
			reordered = append(reordered, s)
			delete(inFolder, id)
		}
	}
	// Styles of the folder missing from IDs keep their old relative order.
	for _, s := range st.Styles {
		if _, left := inFolder[s.ID]; left && s.Folder == cmd.FolderID {
			reordered = append(reordered, s)
		}
	}
	st.Styles = append(rest, reordered...)
	return st
}

// orderStyles re-derives the stable global ordering: unsorted styles first in
// their stored relative order, then depth-first over the folder tree with each
// folder's own styles before its children. Two styles of one folder, and two
// folders' style blocks, never interleave regardless of how the underlying
// slice was mutated.
func orderStyles(styles []model.Style, folders []model.Folder) []model.Style {
	out := make([]model.Style, 0, len(styles))
	for _, s := range styles {
		if s.Folder == "" {
			out = append(out, s)
		}
	}
	foldertree.Walk(folders, func(f model.Folder, _ int) {
		for _, s := range styles {
			if s.Folder == f.ID {
				out = append(out, s)
			}
		}
	})
	return out
}

// ParsePrefixList splits prefix/ignore-rule text on newlines and semicolons,
// trimming blanks; settings dialogs and style editors accept either form.
func ParsePrefixList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';'
	})
	return compactList(fields)
}

func compactList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
