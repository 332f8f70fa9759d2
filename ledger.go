package treediff

import (
	clone "github.com/huandu/go-clone"
)

type ledgerOp int

const (
	// opNoop records an update on a pair absent on both sides.
	opNoop ledgerOp = iota
	// opValue records the previous value of an overwritten leaf.
	opValue
	// opDelete records a ref removed from its parent container.
	opDelete
	// opCreate records a ref created and attached to a parent container.
	opCreate
	// opAdopt records a ref that already existed in the parent container on
	// the updated side and was bound to the pair.
	opAdopt
)

func (o ledgerOp) String() string {
	switch o {
	case opNoop:
		return "noop"
	case opValue:
		return "value"
	case opDelete:
		return "delete"
	case opCreate:
		return "create"
	case opAdopt:
		return "adopt"
	default:
		return "unknown"
	}
}

// ledgerEntry is the undo record of the single pending change of a Pair.
type ledgerEntry struct {
	side Side
	op   ledgerOp

	// ref is the leaf whose value changed (opValue, opAdopt), the removed ref
	// (opDelete) or the created ref (opCreate, opAdopt).
	ref Property

	// parent is the side container ref was removed from or attached to. It
	// is nil when a delete found the slot taken by another object.
	parent Container

	// index is the position ref had in parent before a delete, or -1.
	index int

	// value is the previous leaf value (opValue, opAdopt).
	value any

	// replaced is a child of parent with the same name that AddChild
	// displaced when ref was created (opCreate).
	replaced Property

	// detached holds the refs of descendant pairs cleared by a delete.
	detached []detachedRef

	// implicit marks a container created on behalf of a descendant.
	implicit bool
}

type detachedRef struct {
	pair *Pair
	ref  Property
}

// snapshot returns a deep copy of a leaf value so that the ledger and the
// side trees never share mutable composite values.
func snapshot(v any) any {
	if v == nil {
		return nil
	}
	return clone.Clone(v)
}
