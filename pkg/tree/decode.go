package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxDecodeDepth bounds container nesting accepted by the decoders. It sits well
// below encoding/json's own nesting limit so documents embedded in a larger JSON
// body still report ErrTooDeep.
const MaxDecodeDepth = 1000

// MaxAliasExpansion bounds how many nodes YAML alias references may expand to
// across one document.
const MaxAliasExpansion = 1 << 20

var (
	// ErrInvalidJSON is returned when input is not a single well-formed JSON value.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidYAML is returned when input is not a well-formed YAML document.
	ErrInvalidYAML = errors.New("invalid YAML")
	// ErrTooDeep is returned when input nests containers beyond MaxDecodeDepth.
	ErrTooDeep = errors.New("input nested too deeply")
	// ErrTooLarge is returned when YAML aliases expand beyond MaxAliasExpansion nodes.
	ErrTooLarge = errors.New("input expands to too many nodes")
)

// Decode reads exactly one JSON value from r, keeping object key order.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	n, err := decodeValue(dec, 0)
	if err != nil {
		if errors.Is(err, ErrTooDeep) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidJSON)
	}
	return n, nil
}

// Parse decodes a JSON document held in memory.
func Parse(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder, depth int) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		if depth >= MaxDecodeDepth {
			return nil, ErrTooDeep
		}
		switch v {
		case '[':
			return decodeArray(dec, depth+1)
		case '{':
			return decodeObject(dec, depth+1)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return String(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return nil, err
		}
		return Number(f), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeArray(dec *json.Decoder, depth int) (*Node, error) {
	arr := Array()
	for dec.More() {
		item, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func decodeObject(dec *json.Decoder, depth int) (*Node, error) {
	obj := Object()
	positions := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		value, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		if i, seen := positions[key]; seen {
			obj.members[i].Value = value
			continue
		}
		positions[key] = len(obj.members)
		obj.members = append(obj.members, Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// UnmarshalJSON decodes data into n, keeping object key order.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoded, err := Parse(data)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// MarshalJSON encodes n with object members in their original order.
// Non-finite numbers are encoded as null.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	switch n.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindNumber:
		if n.kind == KindNumber && (math.IsNaN(n.number) || math.IsInf(n.number, 0)) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(n.Text())
	case KindString:
		b, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range n.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
