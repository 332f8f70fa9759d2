package treediff_test

import (
	"context"
	"testing"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/memtree"
)

func mustMatch(t *testing.T, left, right treediff.Container, opts ...treediff.MatchOption) *treediff.DiffNode {
	t.Helper()
	root, err := treediff.Match(context.Background(), left, right, opts...)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	return root
}

func mustFind(t *testing.T, root *treediff.DiffNode, path string) *treediff.DiffNode {
	t.Helper()
	n := root.Find(path)
	if n == nil {
		t.Fatalf("Expected node at %s", path)
	}
	return n
}

func toMap(t *testing.T, c treediff.Container) map[string]any {
	t.Helper()
	m, err := memtree.ToMap(c)
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	return m
}

// paths lists the paths of all nodes below root in display order.
func paths(root *treediff.DiffNode) []string {
	var list []string
	_ = root.Walk(func(n *treediff.DiffNode) error {
		if !n.IsRoot() {
			list = append(list, n.Path())
		}
		return nil
	})
	return list
}

// scenarioTrees returns Left={a:1,b:2} and Right={a:1,b:3,c:4}.
func scenarioTrees() (*memtree.Container, *memtree.Container) {
	left := memtree.FromMap("root", map[string]any{"a": 1, "b": 2})
	right := memtree.FromMap("root", map[string]any{"a": 1, "b": 3, "c": 4})
	return left, right
}
