package rstast

// attrKind tags which field of an AttrValue is live. Spec.md §9 calls
// out "narrow mutable attribute bags to a finite enum of option keys
// with typed values (bool, int, string, list-of-string); reject
// others" as the re-architecture for the source's free-form
// Dictionary<string,object> attribute bags — AttrValue is that finite
// enum.
type attrKind int

const (
	attrString attrKind = iota
	attrBool
	attrInt
	attrStringList
)

// AttrValue is a closed tagged union over the value types a Node
// attribute may hold: string, bool, int, or list-of-string. There is no
// exported way to construct one outside of the AttrString/AttrBool/
// AttrInt/AttrStringList constructors, so arbitrary Go values can never
// enter a node's attribute map.
type AttrValue struct {
	kind attrKind
	str  string
	b    bool
	i    int
	list []string
}

// AttrString wraps a string attribute value.
func AttrString(s string) AttrValue { return AttrValue{kind: attrString, str: s} }

// AttrBool wraps a bool attribute value.
func AttrBool(b bool) AttrValue { return AttrValue{kind: attrBool, b: b} }

// AttrInt wraps an int attribute value.
func AttrInt(i int) AttrValue { return AttrValue{kind: attrInt, i: i} }

// AttrStringList wraps a list-of-string attribute value. The slice is
// copied so later mutation by the caller cannot reach into the node.
func AttrStringList(items []string) AttrValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AttrValue{kind: attrStringList, list: cp}
}

// String returns the string payload and whether this value is a string.
func (v AttrValue) String() (string, bool) { return v.str, v.kind == attrString }

// Bool returns the bool payload and whether this value is a bool.
func (v AttrValue) Bool() (bool, bool) { return v.b, v.kind == attrBool }

// Int returns the int payload and whether this value is an int.
func (v AttrValue) Int() (int, bool) { return v.i, v.kind == attrInt }

// StringList returns the list payload and whether this value is a
// list-of-string. The returned slice is a copy.
func (v AttrValue) StringList() ([]string, bool) {
	if v.kind != attrStringList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// AsInterface renders the value back to a plain Go value, for callers
// (such as the YAML/JSON dump path in cmd/docparse) that need to hand
// the attribute bag to a generic marshaler.
func (v AttrValue) AsInterface() any {
	switch v.kind {
	case attrString:
		return v.str
	case attrBool:
		return v.b
	case attrInt:
		return v.i
	case attrStringList:
		list, _ := v.StringList()
		return list
	default:
		return nil
	}
}
