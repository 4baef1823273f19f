package engine

import "typeset-cli/internal/model"

// Command is the closed set of state transitions. Every mutation funnels
// through Reduce; there is no other writer.
type Command interface{ isCommand() }

// Text / navigation.

type SetText struct{ Text string }

type SetCurrentLineIndex struct{ Index int }

type PrevLine struct{}

// NextLine advances to the next content line. AutoAdvance marks the move as
// the implicit advance after an insertion; it refuses to cross a page
// boundary (current line flagged Last).
type NextLine struct{ AutoAdvance bool }

// NextPage jumps to the first content line after the next page marker.
type NextPage struct{}

type SetCurrentStyleID struct{ ID string }

// Folders.

// SaveFolder creates or updates a folder. A zero ID creates a new folder.
// StyleIDs, when non-nil, is the complete membership list: member styles not
// listed are released to unsorted, listed styles are claimed.
type SaveFolder struct {
	Folder   model.Folder
	StyleIDs []string
}

// DeleteFolder removes the folder and all descendant folders. Permanent also
// deletes their member styles; otherwise the styles become unsorted.
type DeleteFolder struct {
	ID        string
	Permanent bool
}

// DuplicateFolder deep-copies the folder subtree and its member styles under
// fresh ids; the top copy gets a " copy" name suffix.
type DuplicateFolder struct{ ID string }

// ReorderFolders re-ranks (and if needed re-parents) the listed folders under
// ParentID in the given order.
type ReorderFolders struct {
	ParentID string
	Order    []string
}

// Styles.

// SaveStyle creates or updates a style by id (zero ID creates) and stamps its
// Edited timestamp.
type SaveStyle struct{ Style model.Style }

type DeleteStyle struct{ ID string }

// DuplicateStyle copies the style (current style when ID is empty) under a
// fresh id with a " copy" name suffix and makes the copy current.
type DuplicateStyle struct{ ID string }

type ToggleStylePrefixes struct{ ID string }

// SetStyles replaces the whole style list (drag-reorder flows).
type SetStyles struct{ Styles []model.Style }

// ReorderStyles re-orders the styles of one folder ("" = unsorted) per IDs.
type ReorderStyles struct {
	FolderID string
	IDs      []string
}

// Settings.

type SetIgnoreLinePrefixes struct{ Prefixes []string }

type SetIgnoreTags struct{ Tags []string }

type SetDefaultStyleID struct{ ID string }

type SetCurrentFolderTagPriority struct{ Value bool }

type SetTextScale struct{ Scale int }

type SetTextSizeIncrement struct{ Increment int }

type SetImages struct{ Paths []string }

// Selections (multi-bubble mode).

type AddSelection struct{ Selection model.Selection }

type RemoveSelection struct{ Index int }

type ClearSelections struct{}

// SetMultiBubbleMode toggles batch mode; disabling drops stored selections.
type SetMultiBubbleMode struct{ Value bool }

// Import bulk-merges external folders/styles/settings. Styles merge per the
// newer-Edited-wins policy (see Import in import.go); callers detect conflicts
// with ImportHasConflicts and must not dispatch when the user declines.
type Import struct{ Data ImportData }

func (SetText) isCommand()                     {}
func (SetCurrentLineIndex) isCommand()         {}
func (PrevLine) isCommand()                    {}
func (NextLine) isCommand()                    {}
func (NextPage) isCommand()                    {}
func (SetCurrentStyleID) isCommand()           {}
func (SaveFolder) isCommand()                  {}
func (DeleteFolder) isCommand()                {}
func (DuplicateFolder) isCommand()             {}
func (ReorderFolders) isCommand()              {}
func (SaveStyle) isCommand()                   {}
func (DeleteStyle) isCommand()                 {}
func (DuplicateStyle) isCommand()              {}
func (ToggleStylePrefixes) isCommand()         {}
func (SetStyles) isCommand()                   {}
func (ReorderStyles) isCommand()               {}
func (SetIgnoreLinePrefixes) isCommand()       {}
func (SetIgnoreTags) isCommand()               {}
func (SetDefaultStyleID) isCommand()           {}
func (SetCurrentFolderTagPriority) isCommand() {}
func (SetTextScale) isCommand()                {}
func (SetTextSizeIncrement) isCommand()        {}
func (SetImages) isCommand()                   {}
func (AddSelection) isCommand()                {}
func (RemoveSelection) isCommand()             {}
func (ClearSelections) isCommand()             {}
func (SetMultiBubbleMode) isCommand()          {}
func (Import) isCommand()                      {}
