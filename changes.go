package treediff

import (
	"fmt"
	"reflect"

	diffv3 "github.com/r3labs/diff/v3"

	"github.com/brunoga/treediff/internal/core"
)

// Changes returns the value changes that turn the left side of the subtree
// rooted at n into its right side. Each change path starts with the path of
// the leaf it belongs to; composite leaf values contribute one change per
// differing element.
func (n *DiffNode) Changes() (diffv3.Changelog, error) {
	var changelog diffv3.Changelog
	err := n.Walk(func(c *DiffNode) error {
		if c.pair.kind != LeafPair || !c.IsDifference() {
			return nil
		}
		changes, err := c.leafChanges()
		if err != nil {
			return fmt.Errorf("failed to diff %s: %w", c.Path(), err)
		}
		changelog = append(changelog, changes...)
		return nil
	})
	return changelog, err
}

func (n *DiffNode) leafChanges() (diffv3.Changelog, error) {
	prefix := core.ParsePath(n.Path())
	left, right := n.pair.leaf(Left), n.pair.leaf(Right)

	switch {
	case left == nil && right == nil:
		return nil, nil
	case left == nil:
		return diffv3.Changelog{{Type: diffv3.CREATE, Path: prefix, To: right.Value()}}, nil
	case right == nil:
		return diffv3.Changelog{{Type: diffv3.DELETE, Path: prefix, From: left.Value()}}, nil
	}

	from, to := left.Value(), right.Value()
	if from == nil || to == nil || reflect.TypeOf(from) != reflect.TypeOf(to) {
		return diffv3.Changelog{{Type: diffv3.UPDATE, Path: prefix, From: from, To: to}}, nil
	}

	changes, err := diffv3.Diff(from, to)
	if err != nil {
		return nil, err
	}
	for i := range changes {
		changes[i].Path = append(append([]string(nil), prefix...), changes[i].Path...)
	}
	return changes, nil
}
