package treediff

import "context"

// Property is one node of a side tree. Implementations are supplied by the
// caller; the engine only reads and mutates them through this interface and
// the Leaf and Container extensions.
type Property interface {
	// Name is the stable identifying name of the property within its parent.
	Name() string

	// DeclaredType is the schema type of the property.
	DeclaredType() string
}

// Leaf is a property that holds a scalar value.
type Leaf interface {
	Property

	// Value returns the current value. A nil value is allowed.
	Value() any

	// SetValue replaces the current value.
	SetValue(v any)
}

// Container is a property that holds named children.
type Container interface {
	Property

	// Children returns the children in declaration order. Providers that read
	// a remote store report read failures here.
	Children() ([]Property, error)

	// Child returns the attached child with the given name, or nil.
	Child(name string) Property

	// NewLeaf returns a detached leaf suitable as a child of this container.
	NewLeaf(name, declaredType string, value any) Leaf

	// NewContainer returns a detached empty container suitable as a child of
	// this container.
	NewContainer(name, declaredType string) Container

	// AddChild attaches p. A previously attached child with the same name is
	// replaced.
	AddChild(p Property)

	// RemoveChild detaches and returns the child with the given name, or nil
	// if there is none.
	RemoveChild(name string) Property
}

// Inserter is implemented by containers that can attach a child at a given
// position. Restore uses it to put a deleted child back where it was; other
// containers get the child appended by AddChild.
type Inserter interface {
	// InsertChild attaches p before the child at index. A previously
	// attached child with the same name is replaced in place.
	InsertChild(index int, p Property)
}

// Defaulter is implemented by leaves that know whether they hold their
// schema default. Leaves that do not implement it are considered default
// when their value is nil.
type Defaulter interface {
	IsDefault() bool
}

// Tagger is implemented by properties that carry tags. TagFilter uses it.
type Tagger interface {
	HasTag(tag string) bool
}

// TypeTagger is implemented by properties whose declared type carries tags.
type TypeTagger interface {
	TypeHasTag(tag string) bool
}

// Committer is implemented by side roots that stage changes and write them
// back on request.
type Committer interface {
	Commit(ctx context.Context) error
}
