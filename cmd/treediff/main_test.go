package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/pterm/pterm"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/internal/config"
)

const (
	leftDoc  = "a: 1\nb: 2\n"
	rightDoc = "a: 1\nb: 3\nc: 4\n"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	pterm.DisableStyling()

	var out bytes.Buffer
	c := cli{}
	parser, err := kong.New(&c, kong.Name("treediff"), kong.Writers(&out, &out), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	kctx, err := parser.Parse(append([]string{"--plain"}, args...))
	if err != nil {
		return out.String(), err
	}
	kctx.BindTo(context.Background(), (*context.Context)(nil))
	err = kctx.Run()
	return out.String(), err
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)

	out, err := run(t, "sync", left, right, "--into", "left")
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}

	got, _ := os.ReadFile(left)
	if diff := cmp.Diff(rightDoc, string(got)); diff != "" {
		t.Errorf("left document: -want, +got:\n%s", diff)
	}
	if got, _ := os.ReadFile(right); string(got) != rightDoc {
		t.Errorf("Expected the right document to be untouched, got:\n%s", got)
	}
	if !strings.Contains(out, "Synchronised 1 subtrees") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestSync_Paths(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)

	if out, err := run(t, "sync", left, right, "--into", "right", "-p", "/c"); err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}

	got, _ := os.ReadFile(right)
	if diff := cmp.Diff("a: 1\nb: 3\n", string(got)); diff != "" {
		t.Errorf("right document: -want, +got:\n%s", diff)
	}

	if _, err := run(t, "sync", left, right, "-p", "/missing"); err == nil {
		t.Errorf("Expected an error for a missing path")
	}
}

func TestSync_DryRun(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)

	out, err := run(t, "sync", left, right, "--dry-run")
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}
	if got, _ := os.ReadFile(left); string(got) != leftDoc {
		t.Errorf("Expected the left document to be untouched, got:\n%s", got)
	}
	if !strings.Contains(out, "(pending left)") {
		t.Errorf("Expected the pending update in the output:\n%s", out)
	}
}

func TestSync_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)
	cfg := writeFile(t, dir, "treediff.toml", "[left]\nread_only = true\n")

	_, err := run(t, "--config", cfg, "sync", left, right, "--into", "left")
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("Expected a read-only error, got %v", err)
	}
}

func TestSync_RemoteDeletion(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)
	cfg := writeFile(t, dir, "treediff.toml", "[right]\nremote = true\n")

	out, err := run(t, "--config", cfg, "sync", left, right, "--into", "right")
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}
	if got, _ := os.ReadFile(right); string(got) != rightDoc {
		t.Errorf("Expected the remote document to keep c, got:\n%s", got)
	}
	if !strings.Contains(out, "Nothing to synchronise") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestSync_TypeChange(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", "x:\n  y: 1\n")
	right := writeFile(t, dir, "right.yaml", "x: 5\n")

	if out, err := run(t, "sync", left, right, "--into", "right"); err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}
	got, _ := os.ReadFile(right)
	if diff := cmp.Diff("x:\n  y: 1\n", string(got)); diff != "" {
		t.Errorf("right document: -want, +got:\n%s", diff)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)

	out, err := run(t, "diff", left, right)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	for _, want := range []string{"b = 2 | b = 3", "- | c = 4", "2 differences"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "a = 1") {
		t.Errorf("Expected equal leaves to be hidden:\n%s", out)
	}

	out, err = run(t, "diff", "--all", left, right)
	if err != nil || !strings.Contains(out, "a = 1 | a = 1") {
		t.Errorf("Expected equal leaves with --all, got %v:\n%s", err, out)
	}
}

func TestChanges(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", leftDoc)
	right := writeFile(t, dir, "right.yaml", rightDoc)

	out, err := run(t, "changes", "--format", "yaml", left, right)
	if err != nil {
		t.Fatalf("changes failed: %v", err)
	}
	want := `- type: update
  path: /b
  from: 2
  to: 3
- type: create
  path: /c
  to: 4
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("changes: -want, +got:\n%s", diff)
	}
}

func TestSteps(t *testing.T) {
	dir := t.TempDir()
	docs := Documents{
		Left:  writeFile(t, dir, "left.yaml", leftDoc),
		Right: writeFile(t, dir, "right.yaml", rightDoc),
	}
	s, err := docs.open(context.Background(), config.Default(), treediffLogger())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	tests := []struct {
		name    string
		count   int
		reverse bool
		want    []string
	}{
		{"once around", 0, false, []string{"/b", "/c"}},
		{"wrapping", 3, false, []string{"/b", "/c", "/b"}},
		{"reverse", 0, true, []string{"/c", "/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, n := range steps(treediff.NewNavigator(s.root), nil, tt.count, tt.reverse) {
				got = append(got, n.Path())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("steps: -want, +got:\n%s", diff)
			}
		})
	}
}

func treediffLogger() logr.Logger {
	l, _ := newLogger(false)
	return l
}
