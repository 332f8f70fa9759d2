package treediff

import (
	"context"
	"errors"
	"fmt"
)

// Write commits the side trees of the session. Read-only sides are skipped,
// and so are side roots that do not implement Committer. Failures of both
// sides are joined.
func (n *DiffNode) Write(ctx context.Context) error {
	root := n.Root()
	if root.meta == nil {
		return ErrNotRoot
	}

	var errs []error
	for _, side := range Sides {
		if root.meta.readOnly[side] {
			continue
		}
		c, ok := root.pair.refs[side].(Committer)
		if !ok {
			continue
		}
		root.meta.logger.V(1).Info("Writing", "side", side.String(), "deleted", len(root.Deleted(side)))
		if err := c.Commit(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s side: %w", side, err))
		}
	}
	return errors.Join(errs...)
}
