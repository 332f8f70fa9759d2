package main

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/pterm/pterm"

	"github.com/brunoga/treediff/internal/config"
)

// diffCmd prints the merged tree of two documents.
type diffCmd struct {
	Documents `embed:""`

	All bool `help:"Also print subtrees without differences." short:"a"`
}

// Run executes the diff command.
func (c *diffCmd) Run(ctx context.Context, p pterm.TextPrinter, cfg *config.Config, log logr.Logger) error {
	s, err := c.open(ctx, cfg, log)
	if err != nil {
		return err
	}
	render(p, s.root, c.All)
	summary(p, s.root)
	return nil
}
