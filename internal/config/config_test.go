package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/memtree"
)

const sample = `
[right]
remote = true
read_only = true

[filter]
exclude_paths = ["/metadata"]

[[filter.names]]
type = "table"
names = ["users"]

[[prune]]
type = "column"
field = "columnType"
values = ["BLOB"]
suppress = ["size"]
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treediff.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		Right: SideConfig{Remote: true, ReadOnly: true},
		Filter: FilterConfig{
			ExcludePaths: []string{"/metadata"},
			Names:        []NameConfig{{Type: "table", Names: []string{"users"}}},
		},
		Prune: []PruneConfig{{
			Type:     "column",
			Field:    "columnType",
			Values:   []any{"BLOB"},
			Suppress: []string{"size"},
		}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load(...): -want, +got:\n%s", diff)
	}
}

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\"): -want, +got:\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[left\n", "failed to parse"},
		{"unknown key", "[left]\nwritable = true\n", "unknown config key"},
		{"read-only", "[left]\nread_only = true\n[right]\nread_only = true\n", "both sides are read-only"},
		{"prune field", "[[prune]]\ntype = \"column\"\nsuppress = [\"size\"]\n", "type and field are required"},
		{"prune suppress", "[[prune]]\ntype = \"column\"\nfield = \"x\"\n", "nothing to suppress"},
		{"names type", "[[filter.names]]\nnames = [\"a\"]\n", "type is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}

func TestOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	left := memtree.FromMap("local", map[string]any{
		"metadata": map[string]any{"version": 1},
		"name":     "a",
	})
	right := memtree.FromMap("remote", map[string]any{
		"metadata": map[string]any{"version": 2},
		"name":     "b",
	})

	root, err := treediff.Match(context.Background(), left, right, cfg.Options()...)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	if !root.IsRemote(treediff.Right) || !root.IsReadOnly(treediff.Right) {
		t.Errorf("Expected the right side to be remote and read-only")
	}
	if root.IsRemote(treediff.Left) || root.IsReadOnly(treediff.Left) {
		t.Errorf("Expected the left side to be local and writable")
	}
	if root.Find("/metadata") != nil {
		t.Errorf("Expected /metadata to be excluded")
	}
	if root.Find("/name") == nil {
		t.Errorf("Expected /name to be matched")
	}
	if cfg.UpdateHandler() == nil {
		t.Errorf("Expected an update handler")
	}
}
