// Command treediff compares two YAML documents as trees and synchronises
// selected differences from one document into the other.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brunoga/treediff/internal/config"
)

type cli struct {
	Config string `help:"TOML configuration file." short:"c" type:"existingfile"`
	Debug  bool   `help:"Log matching and update steps to stderr."`
	Plain  bool   `help:"Disable colored output."`
	Quiet  bool   `help:"Suppress all output." short:"q"`

	Diff    diffCmd    `cmd:"" help:"Show the merged tree of two documents."`
	Changes changesCmd `cmd:"" help:"List leaf level changes from left to right."`
	Next    nextCmd    `cmd:"" help:"Walk the differences in display order."`
	Sync    syncCmd    `cmd:"" help:"Copy differences from one document into the other."`
}

// AfterApply loads the configuration and binds the shared dependencies of
// every command.
func (c *cli) AfterApply(ctx *kong.Context) error {
	if c.Quiet {
		ctx.Stdout, ctx.Stderr = io.Discard, io.Discard
	}
	if c.Plain {
		pterm.DisableStyling()
	}
	ctx.BindTo(pterm.DefaultBasicText.WithWriter(ctx.Stdout), (*pterm.TextPrinter)(nil))

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	ctx.Bind(cfg)

	logger, err := newLogger(c.Debug)
	if err != nil {
		return err
	}
	ctx.Bind(logger)
	return nil
}

func newLogger(debug bool) (logr.Logger, error) {
	if !debug {
		return logr.Discard(), nil
	}
	zc := zap.NewDevelopmentConfig()
	// logr V(2) maps to zap level -2.
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-2))
	zl, err := zc.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(zl).WithName("treediff"), nil
}

const helpDescription = `Compare and synchronise YAML documents.

Mappings are matched by key, case-insensitively. Scalars and sequences are
compared as values.`

func main() {
	c := cli{}
	parser := kong.Must(&c,
		kong.Name("treediff"),
		kong.Description(helpDescription),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.UsageOnError(),
	)

	if len(os.Args) == 1 {
		_, err := parser.Parse([]string{"--help"})
		parser.FatalIfErrorf(err)
		return
	}

	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	kongCtx.BindTo(context.Background(), (*context.Context)(nil))
	kongCtx.FatalIfErrorf(kongCtx.Run())
}
