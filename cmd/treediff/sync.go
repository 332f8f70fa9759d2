package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/pterm/pterm"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/internal/config"
)

func errNoNode(path string) error {
	return fmt.Errorf("no node at %s", path)
}

// syncCmd copies differences into one of the documents and writes it back.
type syncCmd struct {
	Documents `embed:""`

	Into   string   `default:"left" enum:"left,right" help:"Side receiving the changes. Can be: left, right."`
	Path   []string `help:"Only synchronise the subtrees at these paths. Defaults to the whole document." short:"p"`
	DryRun bool     `help:"Print the result without writing it." name:"dry-run"`
}

// Run executes the sync command.
func (c *syncCmd) Run(ctx context.Context, p pterm.TextPrinter, cfg *config.Config, log logr.Logger) error {
	side, ok := treediff.ParseSide(c.Into)
	if !ok {
		return fmt.Errorf("unknown side %q", c.Into)
	}
	s, err := c.open(ctx, cfg, log)
	if err != nil {
		return err
	}

	paths := c.Path
	if len(paths) == 0 {
		paths = []string{"/"}
	}
	updated, err := apply(s.root, side, cfg.UpdateHandler(), paths)
	if err != nil {
		return err
	}
	if updated == 0 {
		p.Println("Nothing to synchronise.")
		return nil
	}
	s.dirty[side] = true

	render(p, s.root, false)
	if deleted := s.root.Deleted(side); len(deleted) > 0 {
		p.Printfln("Deleting %d properties on the %s side.", len(deleted), side)
	}
	if c.DryRun {
		return nil
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	p.Printfln("Synchronised %d subtrees into %s.", updated, s.docs.path(side))
	return nil
}

// apply updates the nodes at paths towards side. Refused nodes are skipped
// unless none could be updated.
func apply(root *treediff.DiffNode, side treediff.Side, h treediff.UpdateHandler, paths []string) (int, error) {
	var errs []error
	updated := 0
	for _, path := range paths {
		n := root.Find(path)
		if n == nil {
			return 0, errNoNode(path)
		}
		if err := n.TryUpdate(side, h); err != nil {
			errs = append(errs, err)
			continue
		}
		updated++
	}
	if updated == 0 && !allDenied(errs) {
		return 0, errors.Join(errs...)
	}
	return updated, nil
}

func allDenied(errs []error) bool {
	for _, err := range errs {
		if !errors.Is(err, treediff.ErrUpdateDenied) {
			return false
		}
	}
	return true
}
