package treediff

import "fmt"

// UpdateHandler decides whether the caller may update a node towards side.
// remote reports whether side is a non-local resource.
type UpdateHandler interface {
	CanUpdate(side Side, n *DiffNode, remote bool) bool
}

// UpdateHandlerFunc adapts a function to UpdateHandler.
type UpdateHandlerFunc func(side Side, n *DiffNode, remote bool) bool

// CanUpdate calls f(side, n, remote).
func (f UpdateHandlerFunc) CanUpdate(side Side, n *DiffNode, remote bool) bool {
	return f(side, n, remote)
}

// AllowAll permits every update.
var AllowAll UpdateHandler = UpdateHandlerFunc(func(Side, *DiffNode, bool) bool {
	return true
})

// DenyRemoteDeletion refuses updates that would delete a ref on a remote side,
// either at the node itself or anywhere in the subtree the update cascades to.
var DenyRemoteDeletion UpdateHandler = UpdateHandlerFunc(func(side Side, n *DiffNode, remote bool) bool {
	if !remote {
		return true
	}
	return !n.deletesBelow(side)
})

// CanUpdate reports whether n may be updated towards side. Read-only sides,
// nodes with a pending update and subtrees without differences are refused
// before h is consulted. A nil h permits everything else.
func (n *DiffNode) CanUpdate(side Side, h UpdateHandler) bool {
	return n.checkUpdate(side, h) == nil
}

// TryUpdate updates n towards side when CanUpdate permits it and returns the
// reason otherwise.
func (n *DiffNode) TryUpdate(side Side, h UpdateHandler) error {
	if err := n.checkUpdate(side, h); err != nil {
		return fmt.Errorf("cannot update %s on %s side: %w", n.Path(), side, err)
	}
	n.pair.Update(side)
	return nil
}

func (n *DiffNode) checkUpdate(side Side, h UpdateHandler) error {
	if n.IsReadOnly(side) {
		return ErrReadOnly
	}
	if n.pair.ledger != nil {
		return ErrPending
	}
	if !n.IsDifference() && n.CountDifferences() == 0 {
		return ErrUpdateDenied
	}
	if h == nil {
		h = AllowAll
	}
	if !h.CanUpdate(side, n, n.IsRemote(side)) {
		return ErrUpdateDenied
	}
	return nil
}
