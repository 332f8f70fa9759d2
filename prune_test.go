package treediff_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/memtree"
)

func column(name, columnType string, size, scale int, comment string) *memtree.Container {
	return memtree.NewContainer(name, "column",
		memtree.NewLeaf("columnType", "string", columnType),
		memtree.NewLeaf("size", "int", size),
		memtree.NewLeaf("scale", "int", scale),
		memtree.NewLeaf("comment", "string", comment),
	)
}

func table(columns ...treediff.Property) *memtree.Container {
	return memtree.NewContainer("db", "schema",
		memtree.NewContainer("users", "table", columns...),
	)
}

var sizeScaleRule = treediff.FieldValueRule{
	Type:     "column",
	Field:    "columnType",
	Values:   []any{"BLOB", "CLOB"},
	Suppress: []string{"size", "scale"},
}

func TestFieldValueRule(t *testing.T) {
	tests := []struct {
		name        string
		left, right *memtree.Container
		want        []string
	}{
		{
			name:  "suppressed",
			left:  table(column("data", "BLOB", 10, 2, "a")),
			right: table(column("data", "BLOB", 20, 3, "b")),
			want:  []string{"/users", "/users/data", "/users/data/comment"},
		},
		{
			name:  "suppressed without other differences",
			left:  table(column("data", "BLOB", 10, 2, "a")),
			right: table(column("data", "BLOB", 20, 3, "a")),
			want:  nil,
		},
		{
			name:  "managed type",
			left:  table(column("id", "INTEGER", 10, 2, "a")),
			right: table(column("id", "INTEGER", 20, 3, "a")),
			want:  []string{"/users", "/users/id", "/users/id/scale", "/users/id/size"},
		},
		{
			name:  "column type differs",
			left:  table(column("data", "INTEGER", 10, 2, "a")),
			right: table(column("data", "BLOB", 20, 3, "a")),
			want:  []string{"/users", "/users/data", "/users/data/columnType", "/users/data/scale", "/users/data/size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustMatch(t, tt.left, tt.right, treediff.WithPruneRules(sizeScaleRule))
			if diff := cmp.Diff(tt.want, paths(root)); diff != "" {
				t.Errorf("paths: -want, +got:\n%s", diff)
			}
		})
	}
}

func TestPruneFunc(t *testing.T) {
	left := memtree.FromMap("root", map[string]any{"a": 1, "b": 1, "keep": 1})
	right := memtree.FromMap("root", map[string]any{"a": 2, "b": 2, "keep": 2})

	rule := treediff.PruneFunc(func(n *treediff.DiffNode) []string {
		if n.IsRoot() {
			return []string{"A", "B"}
		}
		return nil
	})

	root := mustMatch(t, left, right, treediff.WithPruneRules(rule))
	if diff := cmp.Diff([]string{"/keep"}, paths(root)); diff != "" {
		t.Errorf("paths: -want, +got:\n%s", diff)
	}
}

func TestBuildDiff_Idempotent(t *testing.T) {
	trees := []func() (*memtree.Container, *memtree.Container){
		func() (*memtree.Container, *memtree.Container) { return scenarioTrees() },
		func() (*memtree.Container, *memtree.Container) {
			return table(column("data", "BLOB", 10, 2, "a")), table(column("data", "BLOB", 20, 3, "b"))
		},
		func() (*memtree.Container, *memtree.Container) {
			return memtree.FromMap("root", map[string]any{"x": map[string]any{"y": map[string]any{}}}),
				memtree.FromMap("root", map[string]any{"x": map[string]any{"z": 1}})
		},
	}

	for i, build := range trees {
		left, right := build()
		root := mustMatch(t, left, right, treediff.WithPruneRules(sizeScaleRule))
		once := paths(root)

		root.BuildDiff()
		if diff := cmp.Diff(once, paths(root)); diff != "" {
			t.Errorf("tree %d: second BuildDiff changed the tree: -want, +got:\n%s", i, diff)
		}
	}
}

func TestBuildDiff_AfterUpdate(t *testing.T) {
	left, right := scenarioTrees()
	root := mustMatch(t, left, right)

	mustFind(t, root, "/b").Update(treediff.Left)
	root.BuildDiff()

	got := strings.Join(paths(root), ",")
	if got != "/c" {
		t.Errorf("Expected only /c to remain, got %s", got)
	}
}
