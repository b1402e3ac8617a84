package numhash

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================
//
// Walks the yaml.v3 node tree and uses resolved tags to pick a kind:
// !!int → Int, !!float → Float (including .inf and .nan), !!bool → Bool,
// !!binary → Bytes, !!str and !!timestamp → Text. !!null is unsupported.
// Map keys keep their own kind, so `1: x` and `"1": x` differ.

// FromYAML converts a single YAML document to a Value using DefaultBridgeOpts.
func FromYAML(data []byte) (*Value, error) {
	return FromYAMLWithOpts(data, DefaultBridgeOpts())
}

// FromYAMLWithOpts converts a single YAML document to a Value.
func FromYAMLWithOpts(data []byte, opts BridgeOpts) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("YAML parse error: empty document")
	}
	b := yamlBuilder{opts: opts, limit: opts.maxDepth()}
	return b.build(doc.Content[0], 0)
}

type yamlBuilder struct {
	opts  BridgeOpts
	limit int
}

func (b *yamlBuilder) build(n *yaml.Node, depth int) (*Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarValue(n)

	case yaml.AliasNode:
		if depth >= b.limit {
			return nil, &DepthError{Limit: b.limit}
		}
		return b.build(n.Alias, depth+1)

	case yaml.SequenceNode:
		if depth >= b.limit {
			return nil, &DepthError{Limit: b.limit}
		}
		if b.opts.PackArrays {
			if a, ok := packScalarNodes(n.Content); ok {
				return ArrayValue(a), nil
			}
		}
		items := make([]*Value, 0, len(n.Content))
		for i, child := range n.Content {
			item, err := b.build(child, depth+1)
			if err != nil {
				return nil, atIndex(err, i)
			}
			items = append(items, item)
		}
		return Seq(items...), nil

	case yaml.MappingNode:
		if depth >= b.limit {
			return nil, &DepthError{Limit: b.limit}
		}
		if b.opts.Extended {
			if marker, ok := markerOf(n); ok {
				var obj map[string]any
				if err := n.Decode(&obj); err != nil {
					return nil, fmt.Errorf("line %d: %w", n.Line, err)
				}
				return fromMarker(marker, obj)
			}
		}
		entries := make([]MapEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			k, err := b.build(kn, depth+1)
			if err != nil {
				return nil, atKey(err, kn.Value)
			}
			v, err := b.build(vn, depth+1)
			if err != nil {
				return nil, atKey(err, kn.Value)
			}
			entries = append(entries, Entry(k, v))
		}
		return Map(entries...), nil

	default:
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("YAML node kind %d", n.Kind)}
	}
}

func scalarValue(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Float(f), nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(v), nil
	case "!!binary":
		var s string
		if err := n.Decode(&s); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bytes([]byte(s)), nil
	case "!!null":
		return nil, &UnsupportedTypeError{Type: "null"}
	default:
		return Text(n.Value), nil
	}
}

// markerOf returns the "$numhash" marker type of a mapping node.
func markerOf(n *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k, v := n.Content[i], n.Content[i+1]; k.Value == markerKey && v.Kind == yaml.ScalarNode {
			return v.Value, true
		}
	}
	return "", false
}

// packScalarNodes is the YAML counterpart of packNumbers.
func packScalarNodes(nodes []*yaml.Node) (*Array, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	items := make([]any, len(nodes))
	for i, n := range nodes {
		if n.Kind != yaml.ScalarNode {
			return nil, false
		}
		switch n.ShortTag() {
		case "!!int":
			var v int64
			if err := n.Decode(&v); err != nil {
				return nil, false
			}
			items[i] = v
		case "!!float":
			var v float64
			if err := n.Decode(&v); err != nil {
				return nil, false
			}
			items[i] = v
		default:
			return nil, false
		}
	}
	return packNumbers(items)
}
