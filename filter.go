package treediff

import (
	"strings"

	"github.com/brunoga/treediff/internal/core"
)

// Filter decides which side properties take part in a Match. Match calls
// Reset before walking each side, so a stateful filter starts every side
// fresh.
type Filter interface {
	Test(p Property) bool
	Reset()
}

// PathFilter is a Filter that also wants the JSON Pointer of the property
// inside its side tree. Match calls TestPath instead of Test when a filter
// implements it.
type PathFilter interface {
	Filter
	TestPath(path string, p Property) bool
}

// FilterFunc adapts a stateless function to Filter.
type FilterFunc func(p Property) bool

// Test calls f(p).
func (f FilterFunc) Test(p Property) bool {
	return f(p)
}

// Reset does nothing.
func (f FilterFunc) Reset() {}

// AcceptAll accepts every property. It is the default filter of Match.
var AcceptAll Filter = FilterFunc(func(Property) bool { return true })

// TagFilter accepts properties that carry tag themselves (Tagger) or whose
// declared type carries it (TypeTagger).
func TagFilter(tag string) Filter {
	return FilterFunc(func(p Property) bool {
		if t, ok := p.(Tagger); ok && t.HasTag(tag) {
			return true
		}
		if t, ok := p.(TypeTagger); ok && t.TypeHasTag(tag) {
			return true
		}
		return false
	})
}

type nameFilter struct {
	base         Filter
	declaredType string
	names        map[string]bool
}

// NameFilter restricts properties of declaredType to the given names. Every
// other property is decided by base.
func NameFilter(base Filter, declaredType string, names ...string) Filter {
	f := &nameFilter{
		base:         base,
		declaredType: declaredType,
		names:        make(map[string]bool, len(names)),
	}
	for _, name := range names {
		f.names[name] = true
	}
	return f
}

func (f *nameFilter) Test(p Property) bool {
	if !f.base.Test(p) {
		return false
	}
	if p.DeclaredType() == f.declaredType {
		return f.names[p.Name()]
	}
	return true
}

func (f *nameFilter) Reset() {
	f.base.Reset()
}

type excludeFilter struct {
	base     Filter
	excluded map[string]bool
}

// ExcludePaths rejects the properties at the given JSON Pointer paths, and
// with them their whole subtree. Every other property is decided by base.
func ExcludePaths(base Filter, paths ...string) PathFilter {
	f := &excludeFilter{
		base:     base,
		excluded: make(map[string]bool, len(paths)),
	}
	for _, path := range paths {
		f.excluded[strings.ToLower(core.NormalizePath(path))] = true
	}
	return f
}

func (f *excludeFilter) Test(p Property) bool {
	return f.base.Test(p)
}

func (f *excludeFilter) TestPath(path string, p Property) bool {
	if f.excluded[strings.ToLower(path)] {
		return false
	}
	return f.base.Test(p)
}

func (f *excludeFilter) Reset() {
	f.base.Reset()
}

func testProperty(f Filter, path string, p Property) bool {
	if pf, ok := f.(PathFilter); ok {
		return pf.TestPath(path, p)
	}
	return f.Test(p)
}
