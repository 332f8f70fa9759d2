package main

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/pterm/pterm"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/internal/config"
)

// nextCmd prints the differences in the order a reviewer steps through them.
type nextCmd struct {
	Documents `embed:""`

	From    string `help:"Start after the node at this path."`
	Count   int    `default:"0" help:"Number of steps. Zero prints every difference once." short:"n"`
	Reverse bool   `help:"Step backwards." short:"r"`
}

// Run executes the next command.
func (c *nextCmd) Run(ctx context.Context, p pterm.TextPrinter, cfg *config.Config, log logr.Logger) error {
	s, err := c.open(ctx, cfg, log)
	if err != nil {
		return err
	}

	var current *treediff.DiffNode
	if c.From != "" {
		if current = s.root.Find(c.From); current == nil {
			return errNoNode(c.From)
		}
	}

	for _, n := range steps(treediff.NewNavigator(s.root), current, c.Count, c.Reverse) {
		p.Printfln("%s  %s | %s", n.Path(), label(n, treediff.Left), label(n, treediff.Right))
	}
	return nil
}

// steps moves nav count times from current. A count of zero stops before the
// first node is visited twice.
func steps(nav *treediff.Navigator, current *treediff.DiffNode, count int, reverse bool) []*treediff.DiffNode {
	move := nav.Next
	if reverse {
		move = nav.Previous
	}

	var visited []*treediff.DiffNode
	seen := make(map[*treediff.DiffNode]bool)
	for i := 0; count == 0 || i < count; i++ {
		n := move(current)
		if n == nil || (count == 0 && seen[n]) {
			break
		}
		seen[n] = true
		visited = append(visited, n)
		current = n
	}
	return visited
}
