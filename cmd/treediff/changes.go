package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/brunoga/treediff/internal/config"
	"github.com/brunoga/treediff/internal/core"
)

// changesCmd lists the leaf changes that turn the left document into the
// right one.
type changesCmd struct {
	Documents `embed:""`

	Format string `default:"table" enum:"table,yaml" help:"Output format. Can be: table, yaml."`
}

type change struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
	From any    `yaml:"from,omitempty"`
	To   any    `yaml:"to,omitempty"`
}

// Run executes the changes command.
func (c *changesCmd) Run(ctx context.Context, kctx *kong.Context, cfg *config.Config, log logr.Logger) error {
	s, err := c.open(ctx, cfg, log)
	if err != nil {
		return err
	}
	changelog, err := s.root.Changes()
	if err != nil {
		return err
	}

	changes := make([]change, 0, len(changelog))
	for _, ch := range changelog {
		changes = append(changes, change{Type: ch.Type, Path: core.BuildPath(ch.Path), From: ch.From, To: ch.To})
	}
	if c.Format == "yaml" {
		return writeYAML(kctx.Stdout, changes)
	}
	return writeTable(kctx.Stdout, changes)
}

func writeYAML(w io.Writer, changes []change) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(changes); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, changes []change) error {
	data := pterm.TableData{{"TYPE", "PATH", "FROM", "TO"}}
	for _, ch := range changes {
		data = append(data, []string{ch.Type, ch.Path, format(ch.From), format(ch.To)})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func format(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
