package store

import (
	"encoding/json"
	"fmt"
	"os"

	"typeset-cli/internal/engine"
)

// ExportState builds the shareable payload from a snapshot: the style
// registry, the folder tree and the resolution settings, but not the pasted
// text or the selection queue.
func ExportState(st engine.State) engine.ImportData {
	defaultID := st.DefaultStyleID
	priority := st.CurrentFolderTagPriority
	scale := st.TextScale
	return engine.ImportData{
		Styles:                   st.Styles,
		Folders:                  st.Folders,
		IgnoreLinePrefixes:       st.IgnoreLinePrefixes,
		IgnoreTags:               st.IgnoreTags,
		DefaultStyleID:           &defaultID,
		CurrentFolderTagPriority: &priority,
		TextScale:                &scale,
	}
}

// WriteExport writes the payload as indented JSON, atomically.
func WriteExport(path string, data engine.ImportData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadImport parses an exported payload from path.
func ReadImport(path string) (engine.ImportData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return engine.ImportData{}, err
	}
	var data engine.ImportData
	if err := json.Unmarshal(b, &data); err != nil {
		return engine.ImportData{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return data, nil
}
