package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParse_KeepsKeyOrder(t *testing.T) {
	n, err := Parse([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if n.Kind() != KindObject {
		t.Fatalf("kind = %s, want object", n.Kind())
	}
	var keys []string
	for _, m := range n.Members() {
		keys = append(keys, m.Key)
	}
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Errorf("keys = %v", keys)
	}
	alpha, _ := n.Get("alpha")
	if alpha.Members()[0].Key != "b" || alpha.Members()[1].Key != "a" {
		t.Errorf("nested keys out of order: %+v", alpha.Members())
	}
	if !alpha.Members()[1].Value.IsNull() {
		t.Error("expected null member")
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	n, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	if n.Len() != 2 {
		t.Fatalf("len = %d, want 2", n.Len())
	}
	first := n.Members()[0]
	if first.Key != "a" || first.Value.NumberValue() != 3 {
		t.Errorf("first member = %s:%v, want a:3", first.Key, first.Value.NumberValue())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated object", `{"a": 1`},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"bare word", `hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, ErrInvalidJSON) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidJSON", tt.input, err)
			}
		})
	}
}

func TestParse_TooDeep(t *testing.T) {
	input := strings.Repeat("[", MaxDecodeDepth+1) + strings.Repeat("]", MaxDecodeDepth+1)
	_, err := Parse([]byte(input))
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("error = %v, want ErrTooDeep", err)
	}
}

func TestMarshalJSON_RoundTripsOrder(t *testing.T) {
	in := `{"z":[1,2.5,"x",null,true],"a":{"k":"v"}}`
	n, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("marshal = %s, want %s", out, in)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"string", String("Alice"), "Alice"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number(1299), "1299"},
		{"fraction", Number(0.5), "0.5"},
		{"negative", Number(-42), "-42"},
		{"large", Number(1e21), "1e+21"},
		{"small", Number(1e-7), "1e-7"},
		{"zero", Number(0), "0"},
		{"null", Null(), ""},
		{"nil", nil, ""},
		{"array", Array(String("x")), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObject_SetKeepsFirstPosition(t *testing.T) {
	obj := Object(M("a", Number(1)), M("b", Number(2)), M("a", Number(3)))
	if obj.Len() != 2 {
		t.Fatalf("len = %d", obj.Len())
	}
	v, ok := obj.Get("a")
	if !ok || v.NumberValue() != 3 {
		t.Errorf("a = %v", v.NumberValue())
	}
}

func TestCount(t *testing.T) {
	n := MustFromValue([]any{map[string]any{"a": nil, "b": "x"}, 1})
	// array, object, "x", 1
	if got := n.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestPath(t *testing.T) {
	p := Path{KeySegment("users"), IndexSegment(0), KeySegment("a/b~c")}
	if got := p.String(); got != "users[0].a/b~c" {
		t.Errorf("String() = %q", got)
	}
	if got := p.Pointer(); got != "/users/0/a~1b~0c" {
		t.Errorf("Pointer() = %q", got)
	}
	if got := strings.Join(p.Strings(), "|"); got != "users|[0]|a/b~c" {
		t.Errorf("Strings() = %q", got)
	}
	if got := (Path{}).String(); got != "$" {
		t.Errorf("root String() = %q", got)
	}
}

func TestPath_JSON(t *testing.T) {
	p := Path{KeySegment("users"), IndexSegment(2), KeySegment("0")}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["users",2,"0"]` {
		t.Errorf("Marshal = %s", data)
	}
	var back Path
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.String() != p.String() || !back[1].IsIndex || back[2].IsIndex {
		t.Errorf("Unmarshal = %#v", back)
	}
	for _, bad := range []string{`[-1]`, `[1.5]`, `[true]`} {
		if err := json.Unmarshal([]byte(bad), &back); err == nil {
			t.Errorf("Unmarshal(%s) should fail", bad)
		}
	}
}

func TestPath_Resolve(t *testing.T) {
	root, err := Parse([]byte(`{"users": [{"name": "Alice"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	n, ok := Path{KeySegment("users"), IndexSegment(0), KeySegment("name")}.Resolve(root)
	if !ok || n.StringValue() != "Alice" {
		t.Errorf("Resolve = %v, %v", n, ok)
	}
	if _, ok := (Path{KeySegment("users"), IndexSegment(3)}).Resolve(root); ok {
		t.Error("expected out-of-range index to fail")
	}
}

func TestParseYAML(t *testing.T) {
	input := `
name: Widget
price: 12.5
tags: [a, b]
active: true
notes: ~
count: 3
`
	n, err := ParseYAML([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, m := range n.Members() {
		keys = append(keys, m.Key)
	}
	if strings.Join(keys, ",") != "name,price,tags,active,notes,count" {
		t.Errorf("keys = %v", keys)
	}
	price, _ := n.Get("price")
	if price.Kind() != KindNumber || price.NumberValue() != 12.5 {
		t.Errorf("price = %v (%s)", price.NumberValue(), price.Kind())
	}
	count, _ := n.Get("count")
	if count.Text() != "3" {
		t.Errorf("count text = %q", count.Text())
	}
	active, _ := n.Get("active")
	if active.Kind() != KindBool || !active.BoolValue() {
		t.Error("active should be true")
	}
	notes, _ := n.Get("notes")
	if !notes.IsNull() {
		t.Error("notes should be null")
	}
}

func TestParseYAML_Aliases(t *testing.T) {
	input := `
base: &base
  city: NYC
alice:
  name: Alice
  home: *base
`
	n, err := ParseYAML([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	city, ok := Path{KeySegment("alice"), KeySegment("home"), KeySegment("city")}.Resolve(n)
	if !ok || city.StringValue() != "NYC" {
		t.Errorf("alice.home.city = %v, want NYC", city)
	}
}

func TestParseYAML_AliasExpansionLimit(t *testing.T) {
	// Each level references the previous one nine times: 9^9 nodes once expanded.
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for j := 0; j < 9; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}
	_, err := ParseYAML([]byte(b.String()))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestParseYAML_TooDeep(t *testing.T) {
	input := strings.Repeat("[", MaxDecodeDepth+1) + strings.Repeat("]", MaxDecodeDepth+1)
	_, err := ParseYAML([]byte(input))
	if err == nil {
		t.Fatal("expected an error for deeply nested YAML")
	}
}

func TestParseYAML_Empty(t *testing.T) {
	n, err := ParseYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !n.IsNull() {
		t.Errorf("kind = %s, want null", n.Kind())
	}
}

func TestFromValue(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	n, err := FromValue(map[string]any{
		"b":      []any{1, "x", nil},
		"a":      person{Name: "Bob", Age: 25},
		"nested": String("raw"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Members()[0].Key != "a" {
		t.Errorf("map keys should be sorted, got %s first", n.Members()[0].Key)
	}
	a, _ := n.Get("a")
	if a.Members()[0].Key != "name" || a.Members()[1].Key != "age" {
		t.Errorf("struct field order lost: %+v", a.Members())
	}
	nested, _ := n.Get("nested")
	if nested.StringValue() != "raw" {
		t.Errorf("nested = %q", nested.StringValue())
	}
}
