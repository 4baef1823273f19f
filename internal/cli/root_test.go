package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("typeset %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestTextSetAndLines(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "J: hello\n## note\nworld", "text", "set", "-")
	if !strings.Contains(out, "3 lines, 2 content") {
		t.Fatalf("text set output: %q", out)
	}

	out = run(t, dir, "", "lines")
	var rows []struct {
		Raw     int    `json:"raw"`
		Text    string `json:"text"`
		Current bool   `json:"current"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("lines json: %v\n%s", err, out)
	}
	if len(rows) != 2 || rows[0].Text != "J: hello" || rows[1].Text != "world" {
		t.Fatalf("rows: %+v", rows)
	}
	if !rows[0].Current {
		t.Fatalf("cursor should start on the first content line: %+v", rows)
	}
}

func TestInsertAdvancesCursor(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "one\ntwo", "text", "set", "-")

	out := run(t, dir, "", "insert")
	if !strings.Contains(out, "inserted line 1") {
		t.Fatalf("insert output: %q", out)
	}

	out = run(t, dir, "", "lines")
	var rows []struct {
		Text    string `json:"text"`
		Current bool   `json:"current"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("lines json: %v\n%s", err, out)
	}
	if !rows[1].Current {
		t.Fatalf("cursor should have advanced: %+v", rows)
	}

	out = run(t, dir, "", "history")
	var recs []struct {
		Text string `json:"Text"`
	}
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("history json: %v\n%s", err, out)
	}
	if len(recs) != 1 || recs[0].Text != "one" {
		t.Fatalf("history: %+v", recs)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	path := filepath.Join(t.TempDir(), "styles.json")

	// Nothing to export yet still produces a valid payload.
	run(t, src, "", "export", path)
	out := run(t, dst, "", "import", path, "--force")
	if !strings.Contains(out, "imported") {
		t.Fatalf("import output: %q", out)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()

	run(t, dir, "", "config", "--ignore-prefixes", "##;--", "--scale", "120", "--folder-priority", "false")
	out := run(t, dir, "", "config")

	var cfg struct {
		IgnoreLinePrefixes       []string `json:"ignoreLinePrefixes"`
		TextScale                int      `json:"textScale"`
		CurrentFolderTagPriority bool     `json:"currentFolderTagPriority"`
	}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("config json: %v\n%s", err, out)
	}
	if len(cfg.IgnoreLinePrefixes) != 2 || cfg.IgnoreLinePrefixes[1] != "--" {
		t.Fatalf("prefixes: %+v", cfg)
	}
	if cfg.TextScale != 120 || cfg.CurrentFolderTagPriority {
		t.Fatalf("settings: %+v", cfg)
	}
}

func TestDocs(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "", "docs")
	if !strings.Contains(out, "prefixes") {
		t.Fatalf("topics: %q", out)
	}
	out = run(t, dir, "", "docs", "prefixes", "--raw")
	if !strings.Contains(out, "Repeat shorthand") {
		t.Fatalf("docs body: %q", out)
	}
}
