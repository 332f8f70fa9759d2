package treediff

import (
	"fmt"
	"reflect"

	"github.com/brunoga/treediff/internal/core"
)

// PairKind is the variant of a Pair. It is fixed when the pair is created.
type PairKind int

const (
	// LeafPair pairs two Leaf refs.
	LeafPair PairKind = iota
	// ContainerPair pairs two Container refs.
	ContainerPair
)

func (k PairKind) String() string {
	if k == ContainerPair {
		return "container"
	}
	return "leaf"
}

func kindOf(p Property) PairKind {
	if _, ok := p.(Container); ok {
		return ContainerPair
	}
	return LeafPair
}

// sameRef reports whether a and b are the same side object. Values of
// uncomparable types are told apart by name only.
func sameRef(a, b Property) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if !ta.Comparable() {
		return a.Name() == b.Name()
	}
	return a == b
}

// indexIn returns the position of ref among the children of parent, or -1.
func indexIn(parent Container, ref Property) int {
	children, err := parent.Children()
	if err != nil {
		return -1
	}
	for i, child := range children {
		if sameRef(child, ref) {
			return i
		}
	}
	return -1
}

// attach adds ref to parent, at index when parent supports positions.
func attach(parent Container, ref Property, index int) {
	if ins, ok := parent.(Inserter); ok && index >= 0 {
		ins.InsertChild(index, ref)
		return
	}
	parent.AddChild(ref)
}

// Pair owns the left and right refs of one position of the merged tree and
// implements classification, update and restore for it.
type Pair struct {
	node         *DiffNode
	kind         PairKind
	refs         [2]Property
	name         string
	declaredType string
	ledger       *ledgerEntry
}

func newPair(node *DiffNode, side Side, ref Property) *Pair {
	p := &Pair{
		node:         node,
		kind:         kindOf(ref),
		name:         ref.Name(),
		declaredType: ref.DeclaredType(),
	}
	p.refs[side] = ref
	return p
}

// Kind returns the pair variant.
func (p *Pair) Kind() PairKind {
	return p.kind
}

// Name returns the identification name. It is kept even when both refs are
// absent.
func (p *Pair) Name() string {
	return p.name
}

// DeclaredType returns the declared type of the first observed ref.
func (p *Pair) DeclaredType() string {
	return p.declaredType
}

// Ref returns the ref on side, or nil when the side is absent.
func (p *Pair) Ref(side Side) Property {
	return p.refs[side]
}

// Pending reports whether the pair holds an update that was not restored.
func (p *Pair) Pending() bool {
	return p.ledger != nil
}

// PendingSide returns the side mutated by the pending update.
func (p *Pair) PendingSide() (Side, bool) {
	if p.ledger == nil {
		return 0, false
	}
	return p.ledger.side, true
}

func (p *Pair) leaf(side Side) Leaf {
	l, _ := p.refs[side].(Leaf)
	return l
}

func (p *Pair) container(side Side) Container {
	c, _ := p.refs[side].(Container)
	return c
}

// Diff classifies the pair as seen from side.
func (p *Pair) Diff(side Side) EDiff {
	this, other := p.refs[side], p.refs[side.Opposite()]
	switch {
	case this == nil && other == nil:
		return Deleted
	case this == nil:
		return Missing
	case other == nil:
		return NotEvaluated
	}

	switch p.kind {
	case ContainerPair:
		return BothPresent
	case LeafPair:
		if leavesEqual(p.leaf(Left), p.leaf(Right)) {
			return Equal
		}
		return Different
	}
	return NotEvaluated
}

// IsEqual reports whether the pair needs no synchronisation by itself.
// A container present on only one side counts as equal when it is empty.
func (p *Pair) IsEqual() bool {
	left, right := p.refs[Left], p.refs[Right]
	if left == nil && right == nil {
		return true
	}

	switch p.kind {
	case LeafPair:
		if left == nil || right == nil {
			return false
		}
		return leavesEqual(p.leaf(Left), p.leaf(Right))
	case ContainerPair:
		if left == nil {
			return isEmpty(p.container(Right))
		}
		if right == nil {
			return isEmpty(p.container(Left))
		}
		return true
	}
	return false
}

func leavesEqual(a, b Leaf) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if core.Equal(a.Value(), b.Value(), core.EqualNumeric()) {
		return true
	}
	return isDefaultOrNull(a) && isDefaultOrNull(b)
}

func isDefaultOrNull(l Leaf) bool {
	if d, ok := l.(Defaulter); ok && d.IsDefault() {
		return true
	}
	return core.IsNil(l.Value())
}

func isEmpty(c Container) bool {
	if c == nil {
		return true
	}
	children, err := c.Children()
	return err == nil && len(children) == 0
}

// Update copies the value or presence of the opposite side into side.
// It is a no-op while an earlier update of this pair is pending.
func (p *Pair) Update(side Side) {
	if p.ledger != nil {
		return
	}
	p.node.log().V(1).Info("Update", "path", p.node.Path(), "side", side.String())

	this, other := p.refs[side], p.refs[side.Opposite()]
	switch {
	case other == nil && this != nil:
		p.delete(side)
	case other == nil:
		p.ledger = &ledgerEntry{side: side, op: opNoop}
	case this != nil:
		switch p.kind {
		case LeafPair:
			l := p.leaf(side)
			p.ledger = &ledgerEntry{side: side, op: opValue, ref: l, value: snapshot(l.Value())}
			l.SetValue(snapshot(p.leaf(side.Opposite()).Value()))
		case ContainerPair:
			p.node.postUpdateDown(side)
		}
	default:
		p.materialize(side)
	}
}

// deletes reports whether Update(side) would delete the ref on side.
func (p *Pair) deletes(side Side) bool {
	return p.ledger == nil && p.refs[side] != nil && p.refs[side.Opposite()] == nil
}

// delete removes the ref on side from its parent container after clearing the
// refs of all descendants.
func (p *Pair) delete(side Side) {
	ref := p.refs[side]
	entry := &ledgerEntry{side: side, op: opDelete, ref: ref, index: -1}
	entry.detached = p.node.deleteDown(side, nil)

	if p.node.parent != nil {
		parent := p.node.parent.pair.container(side)
		if parent != nil && sameRef(parent.Child(ref.Name()), ref) {
			entry.index = indexIn(parent, ref)
			parent.RemoveChild(ref.Name())
			entry.parent = parent
		}
	}
	p.refs[side] = nil
	p.ledger = entry
}

// materialize creates the ref on side from the opposite ref, asking the
// parent pair to create the parent container when needed.
func (p *Pair) materialize(side Side) {
	if p.node.parent == nil {
		return
	}
	parent := p.node.parent.pair.create(side)
	if parent == nil {
		return
	}
	other := p.refs[side.Opposite()]

	existing := parent.Child(other.Name())
	if p.node.heldBySibling(side, existing) {
		p.node.log().V(1).Info("Blocked", "path", p.node.Path(), "side", side.String())
		return
	}
	if existing != nil && kindOf(existing) == p.kind {
		entry := &ledgerEntry{side: side, op: opAdopt, ref: existing, parent: parent}
		if l, ok := existing.(Leaf); ok {
			entry.value = snapshot(l.Value())
			l.SetValue(snapshot(p.leaf(side.Opposite()).Value()))
		}
		p.refs[side] = existing
		p.ledger = entry
	} else {
		var ref Property
		switch p.kind {
		case LeafPair:
			ref = parent.NewLeaf(other.Name(), other.DeclaredType(), snapshot(p.leaf(side.Opposite()).Value()))
		case ContainerPair:
			ref = parent.NewContainer(other.Name(), other.DeclaredType())
		}
		parent.AddChild(ref)
		p.refs[side] = ref
		p.ledger = &ledgerEntry{side: side, op: opCreate, ref: ref, parent: parent, replaced: existing}
	}

	if p.kind == ContainerPair {
		p.node.postUpdateDown(side)
	}
}

// create returns the container ref on side, creating it from the opposite
// ref when it is absent. Descendants call it while materializing. It returns
// nil when the container cannot be created.
func (p *Pair) create(side Side) Container {
	if p.refs[side] != nil {
		return p.container(side)
	}
	other := p.refs[side.Opposite()]
	if p.ledger != nil || p.node.parent == nil || other == nil || p.kind != ContainerPair {
		return nil
	}
	parent := p.node.parent.pair.create(side)
	if parent == nil {
		return nil
	}

	existing := parent.Child(other.Name())
	if p.node.heldBySibling(side, existing) {
		return nil
	}
	if c, ok := existing.(Container); ok {
		p.refs[side] = c
		p.ledger = &ledgerEntry{side: side, op: opAdopt, ref: c, parent: parent, implicit: true}
		return c
	}

	c := parent.NewContainer(other.Name(), other.DeclaredType())
	parent.AddChild(c)
	p.refs[side] = c
	p.ledger = &ledgerEntry{side: side, op: opCreate, ref: c, parent: parent, replaced: existing, implicit: true}
	p.node.log().V(1).Info("Created parent", "path", p.node.Path(), "side", side.String())
	return c
}

// Restore reverses the pending update. Without a pending update it restores
// every descendant.
func (p *Pair) Restore() {
	entry := p.ledger
	if entry == nil {
		p.node.restoreDown()
		return
	}
	p.node.log().V(1).Info("Restore", "path", p.node.Path(), "side", entry.side.String(), "op", entry.op.String())
	p.ledger = nil

	switch entry.op {
	case opNoop:

	case opValue:
		entry.ref.(Leaf).SetValue(entry.value)

	case opDelete:
		parent := entry.parent
		if p.node.parent != nil && p.node.parent.pair.refs[entry.side] == nil {
			// The parent was deleted after us; bring it back first.
			p.node.parent.pair.reattach(entry.side)
			if c := p.node.parent.pair.container(entry.side); c != nil {
				parent = c
			}
		}
		if parent != nil {
			attach(parent, entry.ref, entry.index)
		}
		p.refs[entry.side] = entry.ref
		for _, d := range entry.detached {
			d.pair.refs[entry.side] = d.ref
		}

	case opCreate, opAdopt:
		p.node.unwindDown(entry.side)
		if l, ok := entry.ref.(Leaf); ok && entry.op == opAdopt {
			l.SetValue(entry.value)
		}
		if entry.op == opCreate && sameRef(entry.parent.Child(entry.ref.Name()), entry.ref) {
			if entry.replaced != nil {
				entry.parent.AddChild(entry.replaced)
			} else {
				entry.parent.RemoveChild(entry.ref.Name())
			}
		}
		p.refs[entry.side] = nil
		if p.node.parent != nil {
			p.node.parent.pair.releaseImplicit(entry.side)
		}

	default:
		panic(fmt.Sprintf("treediff: unknown ledger op %d", entry.op))
	}
}

// reattach brings back the ref on side when it was removed by a pending
// delete of this pair or of an ancestor.
func (p *Pair) reattach(side Side) {
	if p.refs[side] != nil {
		return
	}
	if p.ledger != nil && p.ledger.op == opDelete && p.ledger.side == side {
		p.Restore()
		return
	}
	if p.node.parent != nil {
		p.node.parent.pair.reattach(side)
	}
}

// releaseImplicit undoes a container created on behalf of descendants once
// none of them needs it anymore.
func (p *Pair) releaseImplicit(side Side) {
	entry := p.ledger
	if entry == nil || !entry.implicit || entry.side != side {
		return
	}
	if entry.op == opCreate && !isEmpty(p.container(side)) {
		return
	}
	if entry.op == opAdopt {
		for _, child := range p.node.children {
			if child.pair.ledger != nil && child.pair.ledger.side == side {
				return
			}
		}
	}
	p.Restore()
}
