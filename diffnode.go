package treediff

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/brunoga/treediff/internal/core"
)

// RootName is the identification name of the root node of every merged tree.
const RootName = "Root"

// DiffNode is a node of the merged tree. Each node owns exactly one Pair.
// The root node additionally carries the metadata of the whole session.
type DiffNode struct {
	parent   *DiffNode
	children []*DiffNode
	pair     *Pair
	meta     *rootMeta
}

type rootMeta struct {
	remote    [2]bool
	readOnly  [2]bool
	logger    logr.Logger
	sessionID uuid.UUID
	rules     []PruneRule
}

func newRoot(left, right Container, meta *rootMeta) *DiffNode {
	n := &DiffNode{meta: meta}
	n.pair = &Pair{
		node:         n,
		kind:         ContainerPair,
		name:         RootName,
		declaredType: left.DeclaredType(),
	}
	n.pair.refs[Left] = left
	n.pair.refs[Right] = right
	return n
}

func (n *DiffNode) addChild(side Side, ref Property) *DiffNode {
	child := &DiffNode{parent: n}
	child.pair = newPair(child, side, ref)
	n.children = append(n.children, child)
	return child
}

func (n *DiffNode) removeChild(child *DiffNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Pair returns the pair owned by the node.
func (n *DiffNode) Pair() *Pair {
	return n.pair
}

// Parent returns the parent node, or nil for the root.
func (n *DiffNode) Parent() *DiffNode {
	return n.parent
}

// Children returns the children in display order.
func (n *DiffNode) Children() []*DiffNode {
	return append([]*DiffNode(nil), n.children...)
}

// IsRoot reports whether n is the root of its merged tree.
func (n *DiffNode) IsRoot() bool {
	return n.meta != nil
}

// IsLeaf reports whether n has no children in the merged tree.
func (n *DiffNode) IsLeaf() bool {
	return len(n.children) == 0
}

// Root returns the root of the merged tree n belongs to.
func (n *DiffNode) Root() *DiffNode {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Name returns the identification name of the node.
func (n *DiffNode) Name() string {
	return n.pair.name
}

// Diff classifies the node as seen from side.
func (n *DiffNode) Diff(side Side) EDiff {
	return n.pair.Diff(side)
}

// IsEqual reports whether the node itself needs no synchronisation.
func (n *DiffNode) IsEqual() bool {
	return n.pair.IsEqual()
}

// IsDifference reports whether either side classifies n as a difference.
func (n *DiffNode) IsDifference() bool {
	return n.pair.Diff(Left).IsDifference() || n.pair.Diff(Right).IsDifference()
}

// Update copies the opposite side into side for this node and, for
// containers, for all of its descendants.
func (n *DiffNode) Update(side Side) {
	n.pair.Update(side)
}

// Restore reverses the pending update of the node, or of all descendants
// when the node has none.
func (n *DiffNode) Restore() {
	n.pair.Restore()
}

// ManagedObject returns the side ref held by the node, or nil.
func (n *DiffNode) ManagedObject(side Side) Property {
	return n.pair.refs[side]
}

// NameForDisplay returns the label of the node on side: "name = value" for
// a present leaf, the name otherwise.
func (n *DiffNode) NameForDisplay(side Side) string {
	if n.IsRoot() {
		if name := n.RootName(side); name != "" {
			return name
		}
		return RootName
	}
	if l := n.pair.leaf(side); l != nil && n.pair.kind == LeafPair {
		return fmt.Sprintf("%s = %v", n.pair.name, l.Value())
	}
	return n.pair.name
}

func (n *DiffNode) String() string {
	return n.pair.name
}

// Path returns the JSON Pointer of the node built from identification
// names. The root is "/".
func (n *DiffNode) Path() string {
	var tokens []string
	for c := n; c.parent != nil; c = c.parent {
		tokens = append(tokens, c.pair.name)
	}
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return core.BuildPath(tokens)
}

// Find returns the descendant at path, relative to n, or nil. Names are
// matched case-insensitively.
func (n *DiffNode) Find(path string) *DiffNode {
	current := n
	for _, token := range core.ParsePath(path) {
		var next *DiffNode
		for _, child := range current.children {
			if strings.EqualFold(child.pair.name, token) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// Walk visits n and its descendants depth-first in display order. Returning
// SkipChildren from fn skips the descendants of the visited node.
func (n *DiffNode) Walk(fn func(*DiffNode) error) error {
	if err := fn(n); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for _, child := range n.children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Deleted returns the paths of the nodes whose ref on side was removed by a
// pending update.
func (n *DiffNode) Deleted(side Side) []string {
	var paths []string
	_ = n.Walk(func(c *DiffNode) error {
		if e := c.pair.ledger; e != nil && e.op == opDelete && e.side == side {
			paths = append(paths, c.Path())
		}
		return nil
	})
	return paths
}

// IsRemote reports whether side represents a non-local resource.
func (n *DiffNode) IsRemote(side Side) bool {
	return n.Root().meta.remote[side]
}

// IsReadOnly reports whether side must not be written.
func (n *DiffNode) IsReadOnly(side Side) bool {
	return n.Root().meta.readOnly[side]
}

// RootName returns the name of the root container on side.
func (n *DiffNode) RootName(side Side) string {
	if ref := n.Root().pair.refs[side]; ref != nil {
		return ref.Name()
	}
	return ""
}

// SessionID returns the identifier of the Match run that built the tree.
func (n *DiffNode) SessionID() uuid.UUID {
	return n.Root().meta.sessionID
}

func (n *DiffNode) log() logr.Logger {
	root := n.Root()
	if root.meta == nil {
		return logr.Discard()
	}
	return root.meta.logger
}

// postUpdateDown pushes an update towards side into every child. Children
// that delete their ref go first so that a sibling of the other kind can take
// over the name.
func (n *DiffNode) postUpdateDown(side Side) {
	for _, child := range n.children {
		if child.pair.deletes(side) {
			child.pair.Update(side)
		}
	}
	for _, child := range n.children {
		child.pair.Update(side)
	}
}

// restoreDown restores every child, undoing deletions last.
func (n *DiffNode) restoreDown() {
	for _, child := range n.children {
		if e := child.pair.ledger; e == nil || e.op != opDelete {
			child.pair.Restore()
		}
	}
	for _, child := range n.children {
		if e := child.pair.ledger; e != nil && e.op == opDelete {
			child.pair.Restore()
		}
	}
}

// heldBySibling reports whether ref is bound on side to another child of
// n's parent. Containers and leaves of the same name are distinct nodes.
func (n *DiffNode) heldBySibling(side Side, ref Property) bool {
	if ref == nil || n.parent == nil {
		return false
	}
	for _, sibling := range n.parent.children {
		if sibling != n && sameRef(sibling.pair.refs[side], ref) {
			return true
		}
	}
	return false
}

// deletesBelow reports whether updating n towards side would delete a ref on
// side, at n or below it.
func (n *DiffNode) deletesBelow(side Side) bool {
	if n.pair.ledger != nil {
		return false
	}
	if n.pair.deletes(side) {
		return true
	}
	for _, child := range n.children {
		if child.deletesBelow(side) {
			return true
		}
	}
	return false
}

// unwindDown restores the pending updates on side below n. Updates pending
// on the other side are left alone.
func (n *DiffNode) unwindDown(side Side) {
	for _, child := range n.children {
		switch e := child.pair.ledger; {
		case e == nil:
			child.unwindDown(side)
		case e.side == side:
			child.pair.Restore()
		}
	}
}

// deleteDown clears the refs on side of every descendant, post-order, and
// returns what it cleared.
func (n *DiffNode) deleteDown(side Side, cleared []detachedRef) []detachedRef {
	for _, child := range n.children {
		cleared = child.deleteDown(side, cleared)
		if ref := child.pair.refs[side]; ref != nil {
			cleared = append(cleared, detachedRef{pair: child.pair, ref: ref})
			child.pair.refs[side] = nil
		}
	}
	return cleared
}
