package engine

import (
	"testing"

	"typeset-cli/internal/model"
)

func styleIDs(styles []model.Style) []string {
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		out = append(out, s.ID)
	}
	return out
}

func assertOrder(t *testing.T, got []model.Style, want ...string) {
	t.Helper()
	ids := styleIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("style order %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("style order %v, want %v", ids, want)
		}
	}
}

func TestStyleOrdering_GroupsByFolderUnsortedFirst(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveFolder{Folder: model.Folder{ID: "f1", Name: "F1"}},
		SaveFolder{Folder: model.Folder{ID: "f2", Name: "F2"}},
		// Interleave saves across folders on purpose.
		SaveStyle{Style: model.Style{ID: "s1", Name: "S1", Folder: "f1"}},
		SaveStyle{Style: model.Style{ID: "u1", Name: "U1"}},
		SaveStyle{Style: model.Style{ID: "s2", Name: "S2", Folder: "f2"}},
		SaveStyle{Style: model.Style{ID: "s3", Name: "S3", Folder: "f1"}},
		SaveStyle{Style: model.Style{ID: "u2", Name: "U2"}},
	)
	assertOrder(t, st.Styles, "u1", "u2", "s1", "s3", "s2")
}

func TestStyleOrdering_NestedFoldersDepthFirst(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveFolder{Folder: model.Folder{ID: "root", Name: "Root"}},
		SaveFolder{Folder: model.Folder{ID: "child", Name: "Child", ParentID: "root"}},
		SaveFolder{Folder: model.Folder{ID: "sibling", Name: "Sibling"}},
		SaveStyle{Style: model.Style{ID: "sib", Name: "Sib", Folder: "sibling"}},
		SaveStyle{Style: model.Style{ID: "ch", Name: "Ch", Folder: "child"}},
		SaveStyle{Style: model.Style{ID: "ro", Name: "Ro", Folder: "root"}},
	)
	// Root's own styles come before its children's; sibling's block follows.
	assertOrder(t, st.Styles, "ro", "ch", "sib")
}

func TestStyleOrdering_ReparentRegroupsContiguously(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveFolder{Folder: model.Folder{ID: "f1", Name: "F1"}},
		SaveFolder{Folder: model.Folder{ID: "f2", Name: "F2"}},
		SaveStyle{Style: model.Style{ID: "a", Name: "A", Folder: "f1"}},
		SaveStyle{Style: model.Style{ID: "b", Name: "B", Folder: "f2"}},
		SaveStyle{Style: model.Style{ID: "c", Name: "C", Folder: "f1"}},
	)
	assertOrder(t, st.Styles, "a", "c", "b")

	// Moving b into f1 via folder save regroups all f1 styles contiguously.
	st = reduceAll(st, SaveFolder{
		Folder:   model.Folder{ID: "f1", Name: "F1"},
		StyleIDs: []string{"a", "b", "c"},
	})
	assertOrder(t, st.Styles, "a", "b", "c")
}

func TestDeleteFolder_OrphansStylesUnlessPermanent(t *testing.T) {
	base := NewState()
	base = reduceAll(base,
		SaveFolder{Folder: model.Folder{ID: "f", Name: "F"}},
		SaveStyle{Style: model.Style{ID: "a", Name: "A", Folder: "f"}},
		SaveStyle{Style: model.Style{ID: "b", Name: "B", Folder: "f"}},
		SaveStyle{Style: model.Style{ID: "c", Name: "C", Folder: "f"}},
		SaveFolder{Folder: model.Folder{ID: "g", Name: "G"}},
		SaveStyle{Style: model.Style{ID: "d", Name: "D", Folder: "g"}},
	)

	st := reduceAll(base, DeleteFolder{ID: "f"})
	if len(st.Styles) != 4 {
		t.Fatalf("non-permanent delete must keep styles, got %d", len(st.Styles))
	}
	for _, id := range []string{"a", "b", "c"} {
		s, ok := st.StyleByID(id)
		if !ok || s.Folder != "" {
			t.Fatalf("style %s should be orphaned to unsorted: %+v", id, s)
		}
	}
	// Orphans sort before the remaining folder's styles.
	assertOrder(t, st.Styles, "a", "b", "c", "d")

	st = reduceAll(base, DeleteFolder{ID: "f", Permanent: true})
	assertOrder(t, st.Styles, "d")
}

func TestDuplicateStyle(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveStyle{Style: model.Style{ID: "a", Name: "Hero", Prefixes: []string{"H:"}, Stroke: &model.Stroke{Enabled: true, Size: 2}}},
		DuplicateStyle{ID: "a"},
	)
	if len(st.Styles) != 2 {
		t.Fatalf("expected 2 styles, got %d", len(st.Styles))
	}
	dup := st.Styles[1]
	if dup.ID == "a" || dup.Name != "Hero copy" {
		t.Fatalf("duplicate: %+v", dup)
	}
	if st.CurrentStyleID != dup.ID {
		t.Fatalf("duplicate must become current, got %q", st.CurrentStyleID)
	}
	// Deep copy: mutating the duplicate's stroke must not touch the original.
	dup.Stroke.Size = 99
	orig, _ := st.StyleByID("a")
	if orig.Stroke.Size != 2 {
		t.Fatalf("stroke shared between original and duplicate")
	}
}

func TestDuplicateStyle_FallsBackToCurrent(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveStyle{Style: model.Style{ID: "a", Name: "A"}},
		DuplicateStyle{},
	)
	if len(st.Styles) != 2 || st.Styles[1].Name != "A copy" {
		t.Fatalf("expected current style duplicated: %v", styleIDs(st.Styles))
	}
}

func TestReorderStyles_WithinFolder(t *testing.T) {
	st := NewState()
	st = reduceAll(st,
		SaveFolder{Folder: model.Folder{ID: "f", Name: "F"}},
		SaveStyle{Style: model.Style{ID: "a", Name: "A", Folder: "f"}},
		SaveStyle{Style: model.Style{ID: "b", Name: "B", Folder: "f"}},
		SaveStyle{Style: model.Style{ID: "c", Name: "C", Folder: "f"}},
		SaveStyle{Style: model.Style{ID: "u", Name: "U"}},
	)
	st = reduceAll(st, ReorderStyles{FolderID: "f", IDs: []string{"c", "a", "b"}})
	assertOrder(t, st.Styles, "u", "c", "a", "b")
}

func TestSaveStyle_StampsEditedAndCompactsPrefixes(t *testing.T) {
	st := NewState()
	st = reduceAll(st, SaveStyle{Style: model.Style{ID: "a", Name: "A", Prefixes: []string{" J: ", "", "K:"}}})
	s, _ := st.StyleByID("a")
	if s.Edited != testNow.UnixMilli() {
		t.Fatalf("Edited = %d, want %d", s.Edited, testNow.UnixMilli())
	}
	if len(s.Prefixes) != 2 || s.Prefixes[0] != "J:" || s.Prefixes[1] != "K:" {
		t.Fatalf("prefixes not compacted: %v", s.Prefixes)
	}
}

func TestSaveStyle_GeneratesID(t *testing.T) {
	st := NewState()
	st = reduceAll(st, SaveStyle{Style: model.Style{Name: "New"}})
	if len(st.Styles) != 1 || st.Styles[0].ID == "" {
		t.Fatalf("expected generated id: %+v", st.Styles)
	}
}
