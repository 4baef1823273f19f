package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Folder groups styles. Folders nest via ParentID and are ordered among
// siblings by Order (dense, zero-based; maintained by foldertree.Normalize).
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
	Order    int    `json:"order"`
}

type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// TextProps is the typographic payload handed to the layer-insertion service.
// The engine only ever reads/scales Size and Leading; the rest passes through.
type TextProps struct {
	FontName           string  `json:"fontName,omitempty"`
	FontPostScriptName string  `json:"fontPostScriptName,omitempty"`
	FontStyle          string  `json:"fontStyle,omitempty"`
	Size               float64 `json:"size,omitempty"`
	AutoLeading        bool    `json:"autoLeading,omitempty"`
	Leading            float64 `json:"leading,omitempty"`
	Tracking           float64 `json:"tracking,omitempty"`
	Color              RGB     `json:"color"`
	Alignment          string  `json:"alignment,omitempty"`
}

type Stroke struct {
	Enabled  bool    `json:"enabled"`
	Size     float64 `json:"size"`
	Opacity  float64 `json:"opacity"`
	Position string  `json:"position,omitempty"`
	Color    RGB     `json:"color"`
}

// Style is a named bundle of formatting assignable to dialogue lines.
// Prefixes are literal leading substrings that auto-select the style.
type Style struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Folder           string    `json:"folder,omitempty"`
	Prefixes         []string  `json:"prefixes"`
	PrefixColor      string    `json:"prefixColor,omitempty"`
	PrefixesDisabled bool      `json:"prefixesDisabled,omitempty"`
	TextProps        TextProps `json:"textProps"`
	Stroke           *Stroke   `json:"stroke,omitempty"`

	// Edited is a unix-millisecond timestamp of the last save; zero means the
	// style was never edited locally. Import conflict resolution compares it.
	Edited int64 `json:"edited,omitempty"`
}

// Clone returns a deep copy; the engine hands clones to callers that may
// mutate (e.g. text scaling) so registry entries are never touched.
func (s Style) Clone() Style {
	out := s
	out.Prefixes = append([]string(nil), s.Prefixes...)
	if s.Stroke != nil {
		st := *s.Stroke
		out.Stroke = &st
	}
	return out
}

// Line is derived from the pasted text on every reducer pass; it is never
// persisted. Index is the 1-based content ordinal (0 for ignored lines).
// Last marks the final usable content line of a page.
type Line struct {
	RawText      string `json:"rawText"`
	RawIndex     int    `json:"rawIndex"`
	IgnorePrefix string `json:"ignorePrefix,omitempty"`
	StylePrefix  string `json:"stylePrefix,omitempty"`
	StyleID      string `json:"styleId,omitempty"`
	Ignore       bool   `json:"ignore"`
	Index        int    `json:"index"`
	Text         string `json:"text"`
	Last         bool   `json:"last,omitempty"`
}

// Selection is one captured speech-bubble selection in multi-bubble mode.
// StyleID is the style that was current when the selection was captured.
// LineIndex, when set, pins the selection to a specific raw line.
type Selection struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	StyleID    string `json:"styleId,omitempty"`
	LineIndex  *int   `json:"lineIndex,omitempty"`
	CapturedAt int64  `json:"capturedAt,omitempty"`
}

func (s Selection) XMid() float64 { return s.Left + s.Width/2 }
func (s Selection) YMid() float64 { return s.Top + s.Height/2 }
func (s Selection) Area() float64 { return s.Width * s.Height }

// BoundsHash identifies a selection by its geometry; the selection monitor
// uses it to avoid re-adding a selection the user already captured.
func (s Selection) BoundsHash() string {
	return fmt.Sprintf("%g_%g_%g_%g", s.XMid(), s.YMid(), s.Width, s.Height)
}

// NewID returns a fresh unique id for folders, styles and history rows.
func NewID() string { return uuid.NewString() }
