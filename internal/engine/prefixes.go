package engine

import (
	"strings"

	"typeset-cli/internal/model"
)

// prefixEntry is one declared prefix of one eligible style. Entries preserve
// registry order, so the first match wins in style order.
type prefixEntry struct {
	Prefix  string
	StyleID string
	Folder  string
}

// prefixTables are the four parallel lookup tables for one derive pass.
// all is the fallback; the others scope matching per the folder-priority
// setting (see match).
type prefixTables struct {
	all           []prefixEntry
	currentFolder []prefixEntry
	folderOnly    []prefixEntry
	unsorted      []prefixEntry
}

func buildPrefixTables(styles []model.Style, currentFolderID string) prefixTables {
	var t prefixTables
	for _, s := range styles {
		if s.PrefixesDisabled {
			continue
		}
		for _, p := range s.Prefixes {
			if p == "" {
				continue
			}
			e := prefixEntry{Prefix: p, StyleID: s.ID, Folder: s.Folder}
			t.all = append(t.all, e)
			if s.Folder != "" {
				t.folderOnly = append(t.folderOnly, e)
			} else {
				t.unsorted = append(t.unsorted, e)
			}
			if s.Folder == currentFolderID {
				t.currentFolder = append(t.currentFolder, e)
			}
		}
	}
	return t
}

// match resolves rawLine against the tables. With folder priority on, styles
// sharing a folder with the currently active style win over everything else;
// with it off, unsorted styles win over foldered ones. Either way the full
// table is the fallback. Matching is a literal leading-substring test.
func (t prefixTables) match(rawLine string, folderPriority bool) (prefixEntry, bool) {
	if folderPriority {
		if e, ok := findPrefix(t.currentFolder, rawLine); ok {
			return e, true
		}
	} else {
		if e, ok := findPrefix(t.unsorted, rawLine); ok {
			return e, true
		}
		if e, ok := findPrefix(t.folderOnly, rawLine); ok {
			return e, true
		}
	}
	return findPrefix(t.all, rawLine)
}

func findPrefix(entries []prefixEntry, rawLine string) (prefixEntry, bool) {
	for _, e := range entries {
		if strings.HasPrefix(rawLine, e.Prefix) {
			return e, true
		}
	}
	return prefixEntry{}, false
}
