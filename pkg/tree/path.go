package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one hop from a parent node to a child: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns a segment addressing an object member.
func KeySegment(key string) Segment {
	return Segment{Key: key}
}

// IndexSegment returns a segment addressing an array element.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String renders the segment as the key itself or as "[i]" for an index.
func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// MarshalJSON encodes a key as a JSON string and an index as a JSON number.
func (s Segment) MarshalJSON() ([]byte, error) {
	if s.IsIndex {
		return []byte(strconv.Itoa(s.Index)), nil
	}
	return json.Marshal(s.Key)
}

// UnmarshalJSON accepts the forms written by MarshalJSON.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*s = KeySegment(v)
	case float64:
		if v < 0 || v != float64(int(v)) {
			return fmt.Errorf("invalid path index %v", v)
		}
		*s = IndexSegment(int(v))
	default:
		return fmt.Errorf("invalid path segment %s", data)
	}
	return nil
}

// Path is the ordered list of segments from the root to a node.
type Path []Segment

// Strings returns each segment's string form.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.String()
	}
	return out
}

// String renders the path in dotted form, e.g. users[0].name. The root is "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			b.WriteString(s.String())
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		key := strings.ReplaceAll(s.Key, "~", "~0")
		b.WriteString(strings.ReplaceAll(key, "/", "~1"))
	}
	return b.String()
}

// Resolve follows p from root and returns the addressed node.
func (p Path) Resolve(root *Node) (*Node, bool) {
	cur := root
	for _, s := range p {
		var ok bool
		if s.IsIndex {
			cur, ok = cur.Index(s.Index)
		} else {
			cur, ok = cur.Get(s.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
