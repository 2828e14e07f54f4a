package tree

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FromValue converts a Go value into a tree. Maps with string keys are ordered by
// key because Go maps carry no order; structs and other types go through
// encoding/json, which keeps struct field order.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("convert number %q: %w", x, err)
		}
		return Number(f), nil
	case []any:
		arr := Array()
		for _, item := range x {
			n, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			arr.items = append(arr.items, n)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			n, err := FromValue(x[k])
			if err != nil {
				return nil, err
			}
			obj.members = append(obj.members, Member{Key: k, Value: n})
		}
		return obj, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert %T: %w", v, err)
		}
		return Parse(data)
	}
}

// MustFromValue is like FromValue but panics on error. Intended for tests and literals.
func MustFromValue(v any) *Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}
