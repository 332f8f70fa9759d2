package treediff

import (
	"strings"

	"github.com/brunoga/treediff/internal/core"
)

// PruneRule names child nodes of n that BuildDiff removes regardless of their
// classification. It is consulted for every node after its children were
// built.
type PruneRule interface {
	Prune(n *DiffNode) []string
}

// PruneFunc adapts a function to PruneRule.
type PruneFunc func(n *DiffNode) []string

// Prune calls f(n).
func (f PruneFunc) Prune(n *DiffNode) []string {
	return f(n)
}

// FieldValueRule suppresses the Suppress children of containers whose right
// side has declared type Type and whose Field leaf holds one of Values on the
// right side. The rule does not apply while Field itself is still a child of
// the node, that is while it differs.
type FieldValueRule struct {
	Type     string
	Field    string
	Values   []any
	Suppress []string
}

// Prune implements PruneRule.
func (r FieldValueRule) Prune(n *DiffNode) []string {
	right := n.pair.container(Right)
	if right == nil || !strings.EqualFold(right.DeclaredType(), r.Type) {
		return nil
	}
	for _, child := range n.children {
		if strings.EqualFold(child.pair.name, r.Field) {
			return nil
		}
	}
	field, ok := right.Child(r.Field).(Leaf)
	if !ok {
		return nil
	}
	for _, v := range r.Values {
		if core.Equal(field.Value(), v, core.EqualNumeric()) {
			return r.Suppress
		}
	}
	return nil
}

// BuildDiff prunes the subtree rooted at n, children first: it removes the
// children named by the prune rules, then detaches every node that is equal
// and has no children left. The root is never detached. Calling BuildDiff
// again on a pruned tree changes nothing.
func (n *DiffNode) BuildDiff() {
	var rules []PruneRule
	if root := n.Root(); root.meta != nil {
		rules = root.meta.rules
	}
	n.buildDiff(rules)
}

func (n *DiffNode) buildDiff(rules []PruneRule) {
	for _, child := range n.Children() {
		child.buildDiff(rules)
	}

	for _, rule := range rules {
		for _, name := range rule.Prune(n) {
			for _, child := range n.Children() {
				if strings.EqualFold(child.pair.name, name) {
					n.log().V(2).Info("Suppressed", "path", child.Path())
					n.removeChild(child)
				}
			}
		}
	}

	if n.parent != nil && len(n.children) == 0 && n.pair.IsEqual() {
		n.parent.removeChild(n)
	}
}
