// Package tree provides the ordered JSON-like value model searched by nlsearch.
package tree

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	// KindNull is JSON null, or an absent value.
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindNumber is a numeric scalar.
	KindNumber
	// KindString is a string scalar.
	KindString
	// KindArray is an ordered sequence of nodes.
	KindArray
	// KindObject is an ordered mapping from unique string keys to nodes.
	KindObject
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value entry of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a single value in a tree. A nil *Node behaves as a null node.
// Nodes are not mutated by the search engine.
type Node struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	items   []*Node
	members []Member
}

// Null returns a null node.
func Null() *Node {
	return &Node{kind: KindNull}
}

// Bool returns a boolean node.
func Bool(v bool) *Node {
	return &Node{kind: KindBool, boolean: v}
}

// Number returns a numeric node.
func Number(v float64) *Node {
	return &Node{kind: KindNumber, number: v}
}

// String returns a string node.
func String(v string) *Node {
	return &Node{kind: KindString, str: v}
}

// Array returns an array node holding items in order.
func Array(items ...*Node) *Node {
	return &Node{kind: KindArray, items: items}
}

// Object returns an object node. When a key repeats, the first position is kept
// and the last value wins.
func Object(members ...Member) *Node {
	n := &Node{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		n.Set(m.Key, m.Value)
	}
	return n
}

// M is shorthand for building an object member.
func M(key string, value *Node) Member {
	return Member{Key: key, Value: value}
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsNull reports whether n is nil or a null node.
func (n *Node) IsNull() bool {
	return n.Kind() == KindNull
}

// IsContainer reports whether n is an array or an object.
func (n *Node) IsContainer() bool {
	k := n.Kind()
	return k == KindArray || k == KindObject
}

// BoolValue returns the boolean held by a KindBool node.
func (n *Node) BoolValue() bool {
	return n != nil && n.boolean
}

// NumberValue returns the number held by a KindNumber node.
func (n *Node) NumberValue() float64 {
	if n == nil {
		return 0
	}
	return n.number
}

// StringValue returns the string held by a KindString node.
func (n *Node) StringValue() string {
	if n == nil {
		return ""
	}
	return n.str
}

// Items returns the elements of an array node. The slice must not be modified.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	return n.items
}

// Members returns the entries of an object node in key order. The slice must not be modified.
func (n *Node) Members() []Member {
	if n == nil {
		return nil
	}
	return n.members
}

// Len returns the number of items or members; 0 for scalars.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.members)
	default:
		return 0
	}
}

// Get returns the value stored under key in an object node.
func (n *Node) Get(key string) (*Node, bool) {
	for _, m := range n.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Index returns the i-th element of an array node.
func (n *Node) Index(i int) (*Node, bool) {
	items := n.Items()
	if i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

// Append adds items to an array node. It is used while building trees.
func (n *Node) Append(items ...*Node) {
	if n == nil || n.kind != KindArray {
		return
	}
	n.items = append(n.items, items...)
}

// Set stores value under key in an object node, replacing the value in place
// when the key already exists. It is used while building trees.
func (n *Node) Set(key string, value *Node) {
	if n == nil || n.kind != KindObject {
		return
	}
	for i := range n.members {
		if n.members[i].Key == key {
			n.members[i].Value = value
			return
		}
	}
	n.members = append(n.members, Member{Key: key, Value: value})
}

// Text returns the canonical text of a scalar node. Containers and nulls return "".
func (n *Node) Text() string {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindBool:
		return strconv.FormatBool(n.boolean)
	case KindNumber:
		return FormatNumber(n.number)
	default:
		return ""
	}
}

// Count returns the number of non-null nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n.IsNull() {
		return 0
	}
	total := 1
	switch n.kind {
	case KindArray:
		for _, item := range n.items {
			total += item.Count()
		}
	case KindObject:
		for _, m := range n.members {
			total += m.Value.Count()
		}
	}
	return total
}

// FormatNumber renders v in its shortest round-trip form: integers carry no
// fraction and very large or very small magnitudes use exponent notation.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go pads the exponent to two digits (1e-07).
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
