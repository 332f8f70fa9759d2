// Package memtree provides in-memory side trees for treediff.
//
// A tree is built from Containers and Leaves. Staged copies of a tree can be
// diffed and updated without touching the original until they are committed.
package memtree

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mitchellh/copystructure"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/internal/core"
)

// ErrNotStaged is returned by Commit on a container that was not created by
// Stage.
var ErrNotStaged = errors.New("container is not staged")

var (
	typeTags   = make(map[string]map[string]bool)
	muTypeTags sync.RWMutex
)

// RegisterTypeTag tags a declared type. Every node of that type reports the
// tag through TypeHasTag.
func RegisterTypeTag(declaredType, tag string) {
	muTypeTags.Lock()
	defer muTypeTags.Unlock()
	if typeTags[declaredType] == nil {
		typeTags[declaredType] = make(map[string]bool)
	}
	typeTags[declaredType][tag] = true
}

func typeHasTag(declaredType, tag string) bool {
	muTypeTags.RLock()
	defer muTypeTags.RUnlock()
	return typeTags[declaredType][tag]
}

type tags map[string]bool

func newTags(list []string) tags {
	if len(list) == 0 {
		return nil
	}
	t := make(tags, len(list))
	for _, tag := range list {
		t[tag] = true
	}
	return t
}

func (t tags) clone() tags {
	if t == nil {
		return nil
	}
	c := make(tags, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Leaf is a named scalar value.
type Leaf struct {
	name       string
	typ        string
	value      any
	def        any
	hasDefault bool
	tags       tags
}

// NewLeaf returns a leaf with the given name, declared type and value.
func NewLeaf(name, declaredType string, value any) *Leaf {
	return &Leaf{name: name, typ: declaredType, value: value}
}

// WithDefault sets the schema default of the leaf and returns it.
func (l *Leaf) WithDefault(v any) *Leaf {
	l.def = v
	l.hasDefault = true
	return l
}

// WithTags adds tags to the leaf and returns it.
func (l *Leaf) WithTags(list ...string) *Leaf {
	if l.tags == nil {
		l.tags = make(tags, len(list))
	}
	for _, tag := range list {
		l.tags[tag] = true
	}
	return l
}

// Name returns the name of the leaf.
func (l *Leaf) Name() string { return l.name }

// DeclaredType returns the type the leaf was created with.
func (l *Leaf) DeclaredType() string { return l.typ }

// Value returns the current value.
func (l *Leaf) Value() any { return l.value }

// SetValue replaces the current value. The value is stored as is.
func (l *Leaf) SetValue(v any) { l.value = v }

// IsDefault reports whether the leaf holds its schema default. A leaf
// without a default is never default.
func (l *Leaf) IsDefault() bool {
	return l.hasDefault && core.Equal(l.value, l.def, core.EqualNumeric())
}

// HasTag reports whether the leaf carries tag.
func (l *Leaf) HasTag(tag string) bool {
	return l.tags[tag]
}

// TypeHasTag reports whether the declared type of the leaf carries tag.
func (l *Leaf) TypeHasTag(tag string) bool {
	return typeHasTag(l.typ, tag)
}

func (l *Leaf) String() string {
	return fmt.Sprintf("%s=%v", l.name, l.value)
}

func (l *Leaf) clone() (*Leaf, error) {
	value, err := copyValue(l.value)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", l.name, err)
	}
	def, err := copyValue(l.def)
	if err != nil {
		return nil, fmt.Errorf("failed to copy default of %s: %w", l.name, err)
	}
	return &Leaf{
		name:       l.name,
		typ:        l.typ,
		value:      value,
		def:        def,
		hasDefault: l.hasDefault,
		tags:       l.tags.clone(),
	}, nil
}

func copyValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return copystructure.Copy(v)
}

// Container is a named node holding children in insertion order.
type Container struct {
	name     string
	typ      string
	children []treediff.Property
	tags     tags
	origin   *Container
}

// NewContainer returns a container with the given children.
func NewContainer(name, declaredType string, children ...treediff.Property) *Container {
	return &Container{name: name, typ: declaredType, children: children}
}

// WithTags adds tags to the container and returns it.
func (c *Container) WithTags(list ...string) *Container {
	if c.tags == nil {
		c.tags = make(tags, len(list))
	}
	for _, tag := range list {
		c.tags[tag] = true
	}
	return c
}

// Name returns the name of the container.
func (c *Container) Name() string { return c.name }

// DeclaredType returns the type the container was created with.
func (c *Container) DeclaredType() string { return c.typ }

// HasTag reports whether the container carries tag.
func (c *Container) HasTag(tag string) bool {
	return c.tags[tag]
}

// TypeHasTag reports whether the declared type of the container carries tag.
func (c *Container) TypeHasTag(tag string) bool {
	return typeHasTag(c.typ, tag)
}

// Children returns the children in insertion order.
func (c *Container) Children() ([]treediff.Property, error) {
	return append([]treediff.Property(nil), c.children...), nil
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

// Child returns the child named name, or nil.
func (c *Container) Child(name string) treediff.Property {
	for _, child := range c.children {
		if child.Name() == name {
			return child
		}
	}
	return nil
}

// NewLeaf returns a detached leaf.
func (c *Container) NewLeaf(name, declaredType string, value any) treediff.Leaf {
	return NewLeaf(name, declaredType, value)
}

// NewContainer returns a detached empty container.
func (c *Container) NewContainer(name, declaredType string) treediff.Container {
	return NewContainer(name, declaredType)
}

// AddChild appends p, replacing a child with the same name in place.
func (c *Container) AddChild(p treediff.Property) {
	for i, child := range c.children {
		if child.Name() == p.Name() {
			c.children[i] = p
			return
		}
	}
	c.children = append(c.children, p)
}

// InsertChild attaches p before the child at index, replacing a child with
// the same name in place. An index out of range appends p.
func (c *Container) InsertChild(index int, p treediff.Property) {
	for i, child := range c.children {
		if child.Name() == p.Name() {
			c.children[i] = p
			return
		}
	}
	if index < 0 || index > len(c.children) {
		index = len(c.children)
	}
	c.children = slices.Insert(c.children, index, p)
}

// RemoveChild removes and returns the child named name, or nil.
func (c *Container) RemoveChild(name string) treediff.Property {
	for i, child := range c.children {
		if child.Name() == name {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return child
		}
	}
	return nil
}

// Lookup returns the descendant at the JSON Pointer path, or nil. The empty
// path and "/" return c.
func (c *Container) Lookup(path string) treediff.Property {
	var current treediff.Property = c
	for _, token := range core.ParsePath(path) {
		container, ok := current.(treediff.Container)
		if !ok {
			return nil
		}
		current = container.Child(token)
		if current == nil {
			return nil
		}
	}
	return current
}

// Value returns the value of the leaf at path.
func (c *Container) Value(path string) (any, bool) {
	l, ok := c.Lookup(path).(treediff.Leaf)
	if !ok {
		return nil, false
	}
	return l.Value(), true
}

// Clone returns a deep copy of the tree rooted at c. Leaf values are copied
// with copystructure. Children of foreign Property implementations are shared.
func (c *Container) Clone() (*Container, error) {
	clone := &Container{
		name: c.name,
		typ:  c.typ,
		tags: c.tags.clone(),
	}
	for _, child := range c.children {
		switch child := child.(type) {
		case *Container:
			cc, err := child.Clone()
			if err != nil {
				return nil, err
			}
			clone.children = append(clone.children, cc)
		case *Leaf:
			lc, err := child.clone()
			if err != nil {
				return nil, err
			}
			clone.children = append(clone.children, lc)
		default:
			clone.children = append(clone.children, child)
		}
	}
	return clone, nil
}

// MustClone is like Clone but panics on error.
func (c *Container) MustClone() *Container {
	clone, err := c.Clone()
	if err != nil {
		panic(err)
	}
	return clone
}

// Stage returns a deep copy of c whose Commit writes it back into c.
func (c *Container) Stage() (*Container, error) {
	staged, err := c.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", c.name, err)
	}
	staged.origin = c
	return staged, nil
}

// Commit replaces the children of the container c was staged from with a
// deep copy of the children of c.
func (c *Container) Commit(ctx context.Context) error {
	if c.origin == nil {
		return ErrNotStaged
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot, err := c.Clone()
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", c.name, err)
	}
	c.origin.children = snapshot.children
	return nil
}

// Origin returns the container c was staged from, or nil.
func (c *Container) Origin() *Container {
	return c.origin
}

func (c *Container) String() string {
	return c.name
}
