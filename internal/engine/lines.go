package engine

import (
	"regexp"
	"strings"

	"typeset-cli/internal/model"
)

// Page markers associate a script section with the Nth page image; the digits
// are a 1-based index into the image list.
var pageMarkerRe = regexp.MustCompile(`(?i)Page [0-9]+`)

func isPageMarker(rawText string) bool { return pageMarkerRe.MatchString(rawText) }

// PageNumber extracts the 1-based page number from a page-marker line
// (0 when the line is not a marker).
func PageNumber(rawText string) int {
	m := pageMarkerRe.FindString(rawText)
	if m == "" {
		return 0
	}
	n := 0
	for _, r := range m {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// parseLines turns the raw text blob into typed line records. Per raw line:
// ignore-prefix detection (first configured prefix that matches), style
// resolution (// shorthand, then prefix tables), literal stripping of the
// matched prefixes and every configured ignore tag, then classification.
// Content ordinals are dense and 1-based over non-ignored lines only.
func parseLines(text string, ignorePrefixes, ignoreTags []string, tables prefixTables, folderPriority bool) []model.Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]model.Line, 0, len(raw))

	counter := 0
	lastOrdinals := []int{}
	previousStyleID := ""
	for i, rawText := range raw {
		ignorePrefix := ""
		for _, p := range ignorePrefixes {
			if strings.HasPrefix(rawText, p) {
				ignorePrefix = p
				break
			}
		}

		stylePrefix := ""
		styleID := ""
		if strings.HasPrefix(rawText, "//") {
			// "Same speaker continues": repeat the style of the nearest
			// preceding content line instead of a table lookup.
			stylePrefix = "//"
			if strings.HasPrefix(rawText, "//:") {
				stylePrefix = "//:"
			}
			styleID = previousStyleID
		} else if e, ok := tables.match(rawText, folderPriority); ok {
			stylePrefix = e.Prefix
			styleID = e.StyleID
		}

		// Literal removal, first occurrence only; ignore tags strip every
		// occurrence anywhere in the line, in configured order. A line that
		// empties out here becomes ignored.
		stripped := strings.Replace(rawText, ignorePrefix, "", 1)
		stripped = strings.Replace(stripped, stylePrefix, "", 1)
		for _, tag := range ignoreTags {
			if tag != "" {
				stripped = strings.ReplaceAll(stripped, tag, "")
			}
		}
		stripped = strings.TrimSpace(stripped)

		page := isPageMarker(rawText)
		ignore := ignorePrefix != "" || stripped == "" || page
		if page && counter > 0 {
			lastOrdinals = append(lastOrdinals, counter)
		}

		idx := 0
		if !ignore {
			counter++
			idx = counter
		}
		ln := model.Line{
			RawText:      rawText,
			RawIndex:     i,
			IgnorePrefix: ignorePrefix,
			StylePrefix:  stylePrefix,
			StyleID:      styleID,
			Ignore:       ignore,
			Index:        idx,
			Text:         stripped,
		}
		if !ln.Ignore && ln.StyleID != "" {
			previousStyleID = ln.StyleID
		}
		lines = append(lines, ln)
	}

	// Every content line whose ordinal was current at a page marker is the
	// last usable line of its page; auto-advance stops there.
	for _, ord := range lastOrdinals {
		for j := range lines {
			if lines[j].Index == ord {
				lines[j].Last = true
				break
			}
		}
	}
	return lines
}
