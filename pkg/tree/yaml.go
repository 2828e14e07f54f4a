package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the first YAML document in data, keeping mapping key order.
// An empty document decodes to a null node. Aliases are expanded into copies of
// their anchored value.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	var d yamlDecoder
	return d.node(&doc, 0, false)
}

// yamlDecoder counts the nodes produced by alias expansion.
type yamlDecoder struct {
	expanded int
}

func (d *yamlDecoder) node(y *yaml.Node, depth int, inAlias bool) (*Node, error) {
	if depth >= MaxDecodeDepth {
		return nil, ErrTooDeep
	}
	if inAlias {
		d.expanded++
		if d.expanded > MaxAliasExpansion {
			return nil, ErrTooLarge
		}
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return d.node(y.Content[0], depth, inAlias)
	case yaml.AliasNode:
		return d.node(y.Alias, depth+1, true)
	case yaml.SequenceNode:
		arr := Array()
		for _, c := range y.Content {
			item, err := d.node(c, depth+1, inAlias)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, item)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := Object()
		positions := make(map[string]int)
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i].Value
			value, err := d.node(y.Content[i+1], depth+1, inAlias)
			if err != nil {
				return nil, err
			}
			if p, seen := positions[key]; seen {
				obj.members[p].Value = value
				continue
			}
			positions[key] = len(obj.members)
			obj.members = append(obj.members, Member{Key: key, Value: value})
		}
		return obj, nil
	case yaml.ScalarNode:
		return scalarFromYAML(y)
	default:
		return nil, fmt.Errorf("%w: unsupported node kind %d at line %d", ErrInvalidYAML, y.Kind, y.Line)
	}
}

func scalarFromYAML(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return Number(f), nil
	default:
		return String(y.Value), nil
	}
}
