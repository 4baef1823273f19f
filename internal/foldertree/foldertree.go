// Package foldertree maintains the flat parent-pointer folder list as a
// validated forest: no self/dangling/cyclic parents, dense sibling order.
package foldertree

import (
	"sort"

	"typeset-cli/internal/model"
)

// Normalize returns a copy of folders with referential damage healed:
//   - ParentID of "" stays root; a ParentID equal to the folder's own ID or
//     referencing a folder that does not exist is reset to root;
//   - any folder whose ancestor chain revisits a node has its ParentID reset
//     to root, severing multi-hop cycles (A->B->A);
//   - each sibling group is stable-sorted by Order (ties keep list position)
//     and Order is reassigned as the dense zero-based rank within the group.
//
// Normalize is idempotent and never errors; broken references are healed
// silently on every reducer pass.
func Normalize(folders []model.Folder) []model.Folder {
	out := append([]model.Folder(nil), folders...)

	byID := make(map[string]int, len(out))
	for i, f := range out {
		byID[f.ID] = i
	}
	for i := range out {
		if out[i].ParentID == out[i].ID {
			out[i].ParentID = ""
			continue
		}
		if out[i].ParentID == "" {
			continue
		}
		if _, ok := byID[out[i].ParentID]; !ok {
			out[i].ParentID = ""
		}
	}

	// Sever ancestor cycles. Walking children recursively must terminate, so
	// any chain that revisits a node gets its offending link cut to root.
	reachesRoot := make(map[string]bool, len(out))
	for i := range out {
		if reachesRoot[out[i].ID] {
			continue
		}
		path := []int{}
		onPath := map[string]bool{}
		j := i
		for {
			id := out[j].ID
			if onPath[id] {
				out[j].ParentID = ""
				break
			}
			if out[j].ParentID == "" || reachesRoot[id] {
				break
			}
			onPath[id] = true
			path = append(path, j)
			j = byID[out[j].ParentID]
		}
		for _, k := range path {
			reachesRoot[out[k].ID] = true
		}
		reachesRoot[out[i].ID] = true
	}

	// Re-rank siblings. Group membership keeps list order, so sorting by the
	// stored Order with a stable sort preserves ties by original position.
	groups := map[string][]int{}
	parents := []string{}
	for i, f := range out {
		if _, ok := groups[f.ParentID]; !ok {
			parents = append(parents, f.ParentID)
		}
		groups[f.ParentID] = append(groups[f.ParentID], i)
	}
	for _, p := range parents {
		idxs := groups[p]
		sort.SliceStable(idxs, func(a, b int) bool {
			return out[idxs[a]].Order < out[idxs[b]].Order
		})
		for rank, i := range idxs {
			out[i].Order = rank
		}
	}
	return out
}

// ChildrenIndex builds a parent->children view sorted by Order. Build it once
// per normalization pass; tree walks then avoid re-filtering the flat list.
func ChildrenIndex(folders []model.Folder) map[string][]model.Folder {
	idx := make(map[string][]model.Folder)
	for _, f := range folders {
		idx[f.ParentID] = append(idx[f.ParentID], f)
	}
	for p := range idx {
		kids := idx[p]
		sort.SliceStable(kids, func(a, b int) bool { return kids[a].Order < kids[b].Order })
	}
	return idx
}

// Walk visits the forest depth-first in display order (root folders first,
// then each folder's children), calling fn with the folder and its depth.
func Walk(folders []model.Folder, fn func(f model.Folder, depth int)) {
	idx := ChildrenIndex(folders)
	seen := map[string]bool{}
	var rec func(parentID string, depth int)
	rec = func(parentID string, depth int) {
		for _, f := range idx[parentID] {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			fn(f, depth)
			rec(f.ID, depth+1)
		}
	}
	rec("", 0)
}

// DescendantIDs collects all transitive children of id, breadth-first.
// The root id itself is not included.
func DescendantIDs(folders []model.Folder, id string) []string {
	if id == "" {
		return nil
	}
	idx := ChildrenIndex(folders)
	out := []string{}
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range idx[cur] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			out = append(out, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return out
}
