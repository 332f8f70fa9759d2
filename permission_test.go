package treediff_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/memtree"
)

func TestCanUpdate(t *testing.T) {
	build := func() (*memtree.Container, *memtree.Container) {
		left := memtree.FromMap("root", map[string]any{"only": 1, "v": 1})
		right := memtree.FromMap("root", map[string]any{"v": 2})
		return left, right
	}

	tests := []struct {
		name    string
		opts    []treediff.MatchOption
		path    string
		side    treediff.Side
		handler treediff.UpdateHandler
		want    error
	}{
		{"allowed", nil, "/v", treediff.Left, nil, nil},
		{"read-only", []treediff.MatchOption{treediff.WithReadOnly(treediff.Left)}, "/v", treediff.Left, nil, treediff.ErrReadOnly},
		{"other side writable", []treediff.MatchOption{treediff.WithReadOnly(treediff.Left)}, "/v", treediff.Right, nil, nil},
		{"remote deletion", []treediff.MatchOption{treediff.WithRemote(treediff.Left)}, "/only", treediff.Left, treediff.DenyRemoteDeletion, treediff.ErrUpdateDenied},
		{"remote creation", []treediff.MatchOption{treediff.WithRemote(treediff.Right)}, "/only", treediff.Right, treediff.DenyRemoteDeletion, nil},
		{"local deletion", []treediff.MatchOption{treediff.WithRemote(treediff.Right)}, "/only", treediff.Left, treediff.DenyRemoteDeletion, nil},
		{
			name: "custom handler",
			path: "/v",
			side: treediff.Right,
			handler: treediff.UpdateHandlerFunc(func(side treediff.Side, n *treediff.DiffNode, remote bool) bool {
				return side == treediff.Left
			}),
			want: treediff.ErrUpdateDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := build()
			root := mustMatch(t, left, right, tt.opts...)
			n := mustFind(t, root, tt.path)

			if got := n.CanUpdate(tt.side, tt.handler); got != (tt.want == nil) {
				t.Errorf("Expected CanUpdate = %v, got %v", tt.want == nil, got)
			}
			err := n.TryUpdate(tt.side, tt.handler)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}
			if tt.want == nil && !n.Pair().Pending() {
				t.Errorf("Expected TryUpdate to update the node")
			}
		})
	}
}

func TestCanUpdate_PendingAndEqual(t *testing.T) {
	left, right := scenarioTrees()
	root := mustMatch(t, left, right)
	b := mustFind(t, root, "/b")

	b.Update(treediff.Left)
	if err := b.TryUpdate(treediff.Right, nil); !errors.Is(err, treediff.ErrPending) {
		t.Errorf("Expected ErrPending, got %v", err)
	}

	same := mustMatch(t, memtree.FromMap("root", map[string]any{"a": 1}), memtree.FromMap("root", map[string]any{"a": 1}))
	if same.CanUpdate(treediff.Left, nil) {
		t.Errorf("Expected a tree without differences to refuse updates")
	}
}

func TestDenyRemoteDeletion_Subtree(t *testing.T) {
	tests := []struct {
		name        string
		left, right map[string]any
		path        string
		side        treediff.Side
		want        error
		wantSide    map[string]any
	}{
		{
			name:     "root with remote-only property",
			left:     map[string]any{"a": 1},
			right:    map[string]any{"a": 2, "keep": 1},
			path:     "/",
			side:     treediff.Right,
			want:     treediff.ErrUpdateDenied,
			wantSide: map[string]any{"a": 2, "keep": 1},
		},
		{
			name:     "nested container",
			left:     map[string]any{"cfg": map[string]any{"a": 1}},
			right:    map[string]any{"cfg": map[string]any{"a": 2, "keep": 1}},
			path:     "/cfg",
			side:     treediff.Right,
			want:     treediff.ErrUpdateDenied,
			wantSide: map[string]any{"cfg": map[string]any{"a": 2, "keep": 1}},
		},
		{
			name:     "root without deletions",
			left:     map[string]any{"a": 1, "extra": 2},
			right:    map[string]any{"a": 2},
			path:     "/",
			side:     treediff.Right,
			wantSide: map[string]any{"a": 1, "extra": 2},
		},
		{
			name:     "deletions on the local side",
			left:     map[string]any{"a": 1, "only": 1},
			right:    map[string]any{"a": 2},
			path:     "/",
			side:     treediff.Left,
			wantSide: map[string]any{"a": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := memtree.FromMap("root", tt.left)
			right := memtree.FromMap("root", tt.right)
			root := mustMatch(t, left, right, treediff.WithRemote(treediff.Right))

			err := mustFind(t, root, tt.path).TryUpdate(tt.side, treediff.DenyRemoteDeletion)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}

			got := left
			if tt.side == treediff.Right {
				got = right
			}
			if diff := cmp.Diff(tt.wantSide, toMap(t, got)); diff != "" {
				t.Errorf("%s side: -want, +got:\n%s", tt.side, diff)
			}
			if tt.want != nil && len(root.Deleted(tt.side)) != 0 {
				t.Errorf("Expected no deletions, got %v", root.Deleted(tt.side))
			}
		})
	}
}
