package knowledge

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "empty"
	}
}

// Value is one node of the fact table: a text scalar, a list of strings,
// or an ordered map of further values. The zero Value is Empty.
//
// Accessors never fail. Reading the wrong kind, or a key that is not
// there, yields the Empty value or the zero Go value.
type Value struct {
	kind   Kind
	text   string
	items  []string
	keys   []string
	fields map[string]Value
}

// Field is a key/value pair used to build ordered maps.
type Field struct {
	Key   string
	Value Value
}

// Empty returns the value used for every missing lookup.
func Empty() Value {
	return Value{}
}

// Text builds a text scalar.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// List builds a list of strings. The slice is copied.
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string{}, items...)}
}

// Map builds an ordered map. A repeated key keeps its first position and
// takes the last value.
func Map(fields ...Field) Value {
	v := Value{kind: KindMap, fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		if _, ok := v.fields[f.Key]; !ok {
			v.keys = append(v.keys, f.Key)
		}
		v.fields[f.Key] = f.Value
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether v carries no facts at all.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindText:
		return v.text == ""
	case KindList:
		return len(v.items) == 0
	case KindMap:
		return len(v.keys) == 0
	default:
		return true
	}
}

// Get walks path through nested maps.
func (v Value) Get(path ...string) Value {
	cur := v
	for _, key := range path {
		if cur.kind != KindMap {
			return Empty()
		}
		next, ok := cur.fields[key]
		if !ok {
			return Empty()
		}
		cur = next
	}
	return cur
}

// Text returns the scalar, or "" for any other kind.
func (v Value) Text() string {
	if v.kind != KindText {
		return ""
	}
	return v.text
}

// List returns a copy of the items, or an empty slice for any other kind.
func (v Value) List() []string {
	if v.kind != KindList {
		return []string{}
	}
	return append([]string{}, v.items...)
}

// Keys returns the map keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return []string{}
	}
	return append([]string{}, v.keys...)
}

// Len is the number of list items or map keys; 1 for non-empty text.
func (v Value) Len() int {
	switch v.kind {
	case KindText:
		if v.text == "" {
			return 0
		}
		return 1
	case KindList:
		return len(v.items)
	case KindMap:
		return len(v.keys)
	default:
		return 0
	}
}
