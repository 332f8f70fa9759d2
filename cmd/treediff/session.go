package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/internal/config"
	"github.com/brunoga/treediff/memtree"
	"github.com/brunoga/treediff/yamltree"
)

// Documents are the positional arguments shared by every command.
type Documents struct {
	Left  string `arg:"" help:"Left YAML document."  type:"existingfile"`
	Right string `arg:"" help:"Right YAML document." type:"existingfile"`
}

func (d Documents) path(side treediff.Side) string {
	if side == treediff.Left {
		return d.Left
	}
	return d.Right
}

// session holds the staged documents and their merged tree.
type session struct {
	docs   Documents
	root   *treediff.DiffNode
	staged [2]*memtree.Container
	dirty  [2]bool
}

func (d Documents) open(ctx context.Context, cfg *config.Config, log logr.Logger) (*session, error) {
	s := &session{docs: d}
	for _, side := range treediff.Sides {
		path := d.path(side)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s side: %w", side, err)
		}
		doc, err := yamltree.Decode(filepath.Base(path), data)
		if err != nil {
			return nil, err
		}
		if s.staged[side], err = doc.Stage(); err != nil {
			return nil, err
		}
	}

	opts := append(cfg.Options(), treediff.WithLogger(log))
	root, err := treediff.Match(ctx, s.staged[treediff.Left], s.staged[treediff.Right], opts...)
	if err != nil {
		return nil, err
	}
	s.root = root
	return s, nil
}

// save commits the staged documents and writes every updated side back to
// its file.
func (s *session) save(ctx context.Context) error {
	if err := s.root.Write(ctx); err != nil {
		return err
	}
	for _, side := range treediff.Sides {
		if !s.dirty[side] || s.root.IsReadOnly(side) {
			continue
		}
		data, err := yamltree.Encode(s.staged[side].Origin())
		if err != nil {
			return err
		}
		if err := os.WriteFile(s.docs.path(side), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s side: %w", side, err)
		}
	}
	return nil
}
