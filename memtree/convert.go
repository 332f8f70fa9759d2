package memtree

import (
	"fmt"
	"sort"

	"github.com/brunoga/treediff"
)

// ObjectType is the declared type FromMap gives to containers.
const ObjectType = "object"

// FromMap builds a container from a nested map. Nested maps become
// containers of type ObjectType, everything else becomes a leaf typed after
// its Go type. Keys are added in sorted order.
func FromMap(name string, m map[string]any) *Container {
	c := NewContainer(name, ObjectType)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			c.AddChild(FromMap(k, v))
		default:
			c.AddChild(NewLeaf(k, typeName(v), v))
		}
	}
	return c
}

// ToMap converts a tree back into nested maps.
func ToMap(c treediff.Container) (map[string]any, error) {
	children, err := c.Children()
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, len(children))
	for _, child := range children {
		switch child := child.(type) {
		case treediff.Container:
			sub, err := ToMap(child)
			if err != nil {
				return nil, err
			}
			m[child.Name()] = sub
		case treediff.Leaf:
			m[child.Name()] = child.Value()
		}
	}
	return m, nil
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
