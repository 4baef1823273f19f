package foldertree

import (
	"reflect"
	"testing"

	"typeset-cli/internal/model"
)

func TestNormalize_HealsDanglingAndSelfParents(t *testing.T) {
	in := []model.Folder{
		{ID: "a", Name: "A", ParentID: "missing", Order: 3},
		{ID: "b", Name: "B", ParentID: "b", Order: 1},
		{ID: "c", Name: "C", ParentID: "a", Order: 0},
	}
	out := Normalize(in)

	ids := map[string]bool{}
	for _, f := range out {
		ids[f.ID] = true
	}
	for _, f := range out {
		if f.ParentID != "" && !ids[f.ParentID] {
			t.Fatalf("folder %s has dangling parent %q", f.ID, f.ParentID)
		}
		if f.ParentID == f.ID {
			t.Fatalf("folder %s still parents itself", f.ID)
		}
	}
	// a and b are now roots; stored orders 3 and 1 re-rank densely to 1 and 0.
	if out[0].Order != 1 || out[1].Order != 0 {
		t.Fatalf("expected dense root order a=1 b=0; got a=%d b=%d", out[0].Order, out[1].Order)
	}
	if out[2].ParentID != "a" || out[2].Order != 0 {
		t.Fatalf("expected c under a with order 0; got %+v", out[2])
	}
}

func TestNormalize_SeversMultiHopCycle(t *testing.T) {
	in := []model.Folder{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
	}
	out := Normalize(in)

	// Every folder must now reach the root.
	byID := map[string]model.Folder{}
	for _, f := range out {
		byID[f.ID] = f
	}
	for _, f := range out {
		seen := map[string]bool{}
		cur := f
		for cur.ParentID != "" {
			if seen[cur.ID] {
				t.Fatalf("cycle survived normalization at %s", cur.ID)
			}
			seen[cur.ID] = true
			cur = byID[cur.ParentID]
		}
	}
	// The walk must still visit all three folders.
	visited := 0
	Walk(out, func(model.Folder, int) { visited++ })
	if visited != 3 {
		t.Fatalf("walk visited %d folders, want 3", visited)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := []model.Folder{
		{ID: "a", Order: 7},
		{ID: "b", Order: 7},
		{ID: "c", ParentID: "a", Order: 2},
		{ID: "d", ParentID: "a", Order: 1},
		{ID: "e", ParentID: "ghost", Order: 0},
	}
	once := Normalize(in)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalize_StableTieBreakByListPosition(t *testing.T) {
	in := []model.Folder{
		{ID: "x", Order: 0},
		{ID: "y", Order: 0},
		{ID: "z", Order: 0},
	}
	out := Normalize(in)
	want := []string{"x", "y", "z"}
	for i, f := range out {
		if f.ID != want[i] || f.Order != i {
			t.Fatalf("position %d: got %s order=%d, want %s order=%d", i, f.ID, f.Order, want[i], i)
		}
	}
}

func TestWalk_DepthFirstDisplayOrder(t *testing.T) {
	folders := Normalize([]model.Folder{
		{ID: "root2", Order: 1},
		{ID: "root1", Order: 0},
		{ID: "r1a", ParentID: "root1", Order: 0},
		{ID: "r1b", ParentID: "root1", Order: 1},
		{ID: "r1a1", ParentID: "r1a", Order: 0},
	})
	got := []string{}
	depths := map[string]int{}
	Walk(folders, func(f model.Folder, depth int) {
		got = append(got, f.ID)
		depths[f.ID] = depth
	})
	want := []string{"root1", "r1a", "r1a1", "r1b", "root2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("walk order %v, want %v", got, want)
	}
	if depths["r1a1"] != 2 || depths["root2"] != 0 {
		t.Fatalf("unexpected depths: %v", depths)
	}
}

func TestDescendantIDs(t *testing.T) {
	folders := []model.Folder{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
		{ID: "d", ParentID: "a", Order: 1},
		{ID: "other"},
	}
	got := DescendantIDs(folders, "a")
	want := []string{"b", "d", "c"} // breadth-first
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DescendantIDs = %v, want %v", got, want)
	}
	if ids := DescendantIDs(folders, "c"); len(ids) != 0 {
		t.Fatalf("leaf should have no descendants, got %v", ids)
	}
	if ids := DescendantIDs(folders, ""); ids != nil {
		t.Fatalf("empty id should return nil, got %v", ids)
	}
}
