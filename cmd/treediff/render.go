package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/brunoga/treediff"
)

func style(d treediff.EDiff) pterm.Color {
	switch d {
	case treediff.Different:
		return pterm.FgYellow
	case treediff.Missing, treediff.Deleted:
		return pterm.FgRed
	case treediff.NotEvaluated:
		return pterm.FgGreen
	default:
		return pterm.FgDefault
	}
}

func label(n *treediff.DiffNode, side treediff.Side) string {
	if n.ManagedObject(side) == nil && !n.IsRoot() {
		return style(n.Diff(side)).Sprint("-")
	}
	return style(n.Diff(side)).Sprint(n.NameForDisplay(side))
}

func depth(n *treediff.DiffNode) int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// render prints the merged tree below root, one line per node. Unless all is
// set, subtrees without differences or pending updates are left out.
func render(p pterm.TextPrinter, root *treediff.DiffNode, all bool) {
	_ = root.Walk(func(n *treediff.DiffNode) error {
		if !all && !n.IsRoot() && !n.IsDifference() && n.CountDifferences() == 0 && !hasPending(n) {
			return treediff.SkipChildren
		}
		indent := strings.Repeat("  ", depth(n))
		line := fmt.Sprintf("%s%s | %s", indent, label(n, treediff.Left), label(n, treediff.Right))
		if e := pending(n); e != "" {
			line += " " + pterm.FgCyan.Sprint(e)
		}
		p.Println(line)
		return nil
	})
}

func pending(n *treediff.DiffNode) string {
	if side, ok := n.Pair().PendingSide(); ok {
		return fmt.Sprintf("(pending %s)", side)
	}
	return ""
}

func hasPending(n *treediff.DiffNode) bool {
	if n.Pair().Pending() {
		return true
	}
	for _, child := range n.Children() {
		if hasPending(child) {
			return true
		}
	}
	return false
}

func summary(p pterm.TextPrinter, root *treediff.DiffNode) {
	states := root.CollectDiffStates(nil)
	var names []string
	for _, s := range states.States() {
		names = append(names, s.String())
	}
	p.Printfln("%d differences [%s]", root.CountDifferences(), strings.Join(names, ", "))
}
