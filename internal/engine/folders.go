package engine

import (
	"typeset-cli/internal/foldertree"
	"typeset-cli/internal/model"
)

func saveFolder(st State, cmd SaveFolder) State {
	f := cmd.Folder
	if f.ID == "" {
		f.ID = model.NewID()
	}

	// StyleIDs is the complete membership list for this folder: member styles
	// not listed are released, listed styles are claimed.
	if cmd.StyleIDs != nil {
		listed := make(map[string]bool, len(cmd.StyleIDs))
		for _, id := range cmd.StyleIDs {
			listed[id] = true
		}
		styles := append([]model.Style(nil), st.Styles...)
		for i := range styles {
			if styles[i].Folder == f.ID && !listed[styles[i].ID] {
				styles[i].Folder = ""
			}
			if listed[styles[i].ID] {
				styles[i].Folder = f.ID
			}
		}
		st.Styles = styles
	}

	folders := append([]model.Folder(nil), st.Folders...)
	updated := false
	for i := range folders {
		if folders[i].ID == f.ID {
			folders[i].Name = f.Name
			if folders[i].ParentID != f.ParentID {
				// Re-parented folders land last among their new siblings.
				folders[i].ParentID = f.ParentID
				folders[i].Order = siblingCount(folders, f.ParentID, f.ID)
			}
			updated = true
			break
		}
	}
	if !updated {
		f.Order = siblingCount(folders, f.ParentID, f.ID)
		folders = append(folders, f)
	}
	st.Folders = folders
	return st
}

func deleteFolder(st State, cmd DeleteFolder) State {
	if _, ok := st.FolderByID(cmd.ID); !ok {
		return st
	}
	doomed := map[string]bool{cmd.ID: true}
	for _, id := range foldertree.DescendantIDs(st.Folders, cmd.ID) {
		doomed[id] = true
	}

	folders := make([]model.Folder, 0, len(st.Folders))
	for _, f := range st.Folders {
		if !doomed[f.ID] {
			folders = append(folders, f)
		}
	}
	st.Folders = folders

	if cmd.Permanent {
		styles := make([]model.Style, 0, len(st.Styles))
		for _, s := range st.Styles {
			if !doomed[s.Folder] {
				styles = append(styles, s)
			}
		}
		st.Styles = styles
	}
	// Non-permanent: member styles keep their dead folder ref here and are
	// snapped to unsorted by the derive pass.
	return st
}

func duplicateFolder(st State, cmd DuplicateFolder) State {
	src, ok := st.FolderByID(cmd.ID)
	if !ok {
		return st
	}
	idMap := map[string]string{src.ID: model.NewID()}
	for _, id := range foldertree.DescendantIDs(st.Folders, src.ID) {
		idMap[id] = model.NewID()
	}

	folders := append([]model.Folder(nil), st.Folders...)
	for _, f := range st.Folders {
		newID, copied := idMap[f.ID]
		if !copied {
			continue
		}
		dup := f
		dup.ID = newID
		if f.ID == src.ID {
			dup.Name = f.Name + " copy"
			dup.Order = siblingCount(st.Folders, f.ParentID, "")
		} else {
			dup.ParentID = idMap[f.ParentID]
		}
		folders = append(folders, dup)
	}

	styles := append([]model.Style(nil), st.Styles...)
	for _, s := range st.Styles {
		newFolder, copied := idMap[s.Folder]
		if !copied {
			continue
		}
		dup := s.Clone()
		dup.ID = model.NewID()
		dup.Folder = newFolder
		styles = append(styles, dup)
	}

	st.Folders = folders
	st.Styles = styles
	return st
}

func reorderFolders(st State, cmd ReorderFolders) State {
	if len(cmd.Order) == 0 {
		return st
	}
	rank := make(map[string]int, len(cmd.Order))
	for i, id := range cmd.Order {
		rank[id] = i
	}
	folders := append([]model.Folder(nil), st.Folders...)
	for i := range folders {
		if r, ok := rank[folders[i].ID]; ok {
			folders[i].ParentID = cmd.ParentID
			folders[i].Order = r
		}
	}
	st.Folders = folders
	return st
}

// siblingCount counts folders sharing parentID, excluding excludeID; new and
// re-parented folders use it to take the last rank in the group.
func siblingCount(folders []model.Folder, parentID, excludeID string) int {
	n := 0
	for _, f := range folders {
		if f.ParentID == parentID && f.ID != excludeID {
			n++
		}
	}
	return n
}
