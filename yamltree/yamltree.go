// Package yamltree reads YAML documents into memtree side trees and writes
// them back. Mappings become containers, scalars and sequences become leaves.
package yamltree

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brunoga/treediff"
	"github.com/brunoga/treediff/memtree"
)

// Declared types of decoded nodes.
const (
	MappingType  = "!!map"
	SequenceType = "!!seq"
)

// ErrNotMapping is returned when the top level of a document is not a
// mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// Decode parses a YAML document into a container named name.
func Decode(name string, data []byte) (*memtree.Container, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if doc.Kind == 0 {
		return memtree.NewContainer(name, MappingType), nil
	}

	node := &doc
	if node.Kind == yaml.DocumentNode {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to decode %s: %w", name, ErrNotMapping)
	}
	return decodeMapping(name, node)
}

func decodeMapping(name string, node *yaml.Node) (*memtree.Container, error) {
	c := memtree.NewContainer(name, MappingType)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}

		switch value.Kind {
		case yaml.MappingNode:
			child, err := decodeMapping(key.Value, value)
			if err != nil {
				return nil, err
			}
			c.AddChild(child)
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, fmt.Errorf("failed to decode %s at line %d: %w", key.Value, value.Line, err)
			}
			c.AddChild(memtree.NewLeaf(key.Value, value.ShortTag(), v))
		}
	}
	return c, nil
}

// Encode writes c as a YAML document, keeping the order of the children.
func Encode(c treediff.Container) ([]byte, error) {
	node, err := encodeContainer(c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeContainer(c treediff.Container) (*yaml.Node, error) {
	children, err := c.Children()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Name(), err)
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: MappingType}
	for _, child := range children {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: child.Name()}

		var value *yaml.Node
		switch child := child.(type) {
		case treediff.Container:
			value, err = encodeContainer(child)
			if err != nil {
				return nil, err
			}
		case treediff.Leaf:
			value = &yaml.Node{}
			if err := value.Encode(child.Value()); err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", child.Name(), err)
			}
		default:
			continue
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
