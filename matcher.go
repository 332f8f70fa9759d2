package treediff

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/brunoga/treediff/internal/core"
)

// Match walks both side trees and builds the merged diff tree. The roots must
// share a declared type. Properties rejected by the filter are ignored, and
// after both sides were visited the tree is sorted by name and pruned with
// BuildDiff.
//
// Errors returned by a side while reading its children are wrapped and
// returned unchanged otherwise.
func Match(ctx context.Context, left, right Container, opts ...MatchOption) (*DiffNode, error) {
	if left == nil || right == nil {
		return nil, ErrNilSide
	}
	if left.DeclaredType() != right.DeclaredType() {
		return nil, fmt.Errorf("%w: %q and %q", ErrTypeMismatch, left.DeclaredType(), right.DeclaredType())
	}

	config := newMatchConfig(opts)
	root := newRoot(left, right, &rootMeta{
		remote:    config.remote,
		readOnly:  config.readOnly,
		logger:    config.logger.WithValues("session", config.sessionID.String()),
		sessionID: config.sessionID,
		rules:     config.rules,
	})
	log := root.meta.logger

	for _, side := range Sides {
		config.filter.Reset()
		m := &matcher{ctx: ctx, side: side, filter: config.filter}
		if err := m.visit(root, root.pair.container(side), "/"); err != nil {
			return nil, fmt.Errorf("failed to match %s side: %w", side, err)
		}
		log.V(1).Info("Matched side", "side", side.String(), "properties", m.visited)
	}

	root.reorder()
	root.BuildDiff()
	log.V(1).Info("Built diff", "differences", root.CountDifferences())
	return root, nil
}

type matcher struct {
	ctx     context.Context
	side    Side
	filter  Filter
	visited int
}

// visit attaches the children of c to node, merging them by name with the
// children already added from the other side.
func (m *matcher) visit(node *DiffNode, c Container, path string) error {
	if err := m.ctx.Err(); err != nil {
		return err
	}
	children, err := c.Children()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	index := make(map[string]*DiffNode, len(node.children))
	for _, child := range node.children {
		index[matchKey(child.pair.kind, child.pair.name)] = child
	}

	for _, prop := range children {
		childPath := core.JoinPath(path, core.EscapeKey(prop.Name()))
		if !testProperty(m.filter, childPath, prop) {
			continue
		}
		m.visited++

		kind := kindOf(prop)
		key := matchKey(kind, prop.Name())
		child := index[key]
		if child == nil || child.pair.refs[m.side] != nil {
			child = node.addChild(m.side, prop)
			index[key] = child
		} else {
			child.pair.refs[m.side] = prop
		}

		if kind == ContainerPair {
			if err := m.visit(child, prop.(Container), childPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchKey identifies a child within its parent. Containers match by name
// regardless of case, leaves by exact name.
func matchKey(kind PairKind, name string) string {
	if kind == ContainerPair {
		return "c/" + strings.ToUpper(name)
	}
	return "l/" + name
}

// reorder sorts the children of n case-insensitively by name, recursively.
func (n *DiffNode) reorder() {
	sort.SliceStable(n.children, func(i, j int) bool {
		return strings.ToUpper(n.children[i].pair.name) < strings.ToUpper(n.children[j].pair.name)
	})
	for _, child := range n.children {
		child.reorder()
	}
}
