package bencode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Type identifies the bencode case a Value holds.
type Type uint8

const (
	TypeInvalid Type = iota // zero Value; never produced by a successful decode
	TypeInteger
	TypeBytes
	TypeList
	TypeDictionary
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeBytes:
		return "bytes"
	case TypeList:
		return "list"
	case TypeDictionary:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Value represents a single bencode value: a signed 64-bit integer, a
// byte string, a list, or a dictionary. There are no other cases, and a
// Value is always exactly one of them. The zero Value has TypeInvalid.
//
// Values returned by the decoder own their memory; mutating the decoded
// input buffer never changes a Value.
type Value struct {
	typ Type

	// Scalar payloads (one valid based on typ)
	num int64
	raw []byte

	// Container payloads
	list []Value
	dict *Dictionary
}

// ============================================================
// Constructors
// ============================================================

// Integer creates an integer value.
func Integer(n int64) Value {
	return Value{typ: TypeInteger, num: n}
}

// Bytes creates a byte-string value. The Value references b directly;
// callers who keep mutating b should pass a copy.
func Bytes(b []byte) Value {
	return Value{typ: TypeBytes, raw: b}
}

// String creates a byte-string value from a Go string.
func String(s string) Value {
	return Value{typ: TypeBytes, raw: []byte(s)}
}

// List creates a list value.
func List(elems ...Value) Value {
	return Value{typ: TypeList, list: elems}
}

// Dict creates a dictionary value from key-value pairs. Pairs are
// inserted in order; a repeated key replaces the earlier value and keeps
// its first position, matching the decoder's duplicate-key policy.
func Dict(pairs ...Entry) Value {
	d := NewDictionary()
	for _, e := range pairs {
		d.Set(e.Key, e.Value)
	}
	return Value{typ: TypeDictionary, dict: d}
}

// DictOf wraps an existing Dictionary as a value.
func DictOf(d *Dictionary) Value {
	if d == nil {
		d = NewDictionary()
	}
	return Value{typ: TypeDictionary, dict: d}
}

// Pair creates an Entry for use with Dict.
func Pair(key string, v Value) Entry {
	return Entry{Key: []byte(key), Value: v}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the value type.
func (v Value) Type() Type {
	return v.typ
}

// AsInteger returns the integer payload.
func (v Value) AsInteger() (int64, bool) {
	if v.typ != TypeInteger {
		return 0, false
	}
	return v.num, true
}

// AsBytes returns the byte-string payload.
func (v Value) AsBytes() ([]byte, bool) {
	if v.typ != TypeBytes {
		return nil, false
	}
	return v.raw, true
}

// AsString returns the byte-string payload as a Go string.
func (v Value) AsString() (string, bool) {
	if v.typ != TypeBytes {
		return "", false
	}
	return string(v.raw), true
}

// AsList returns the list elements.
func (v Value) AsList() ([]Value, bool) {
	if v.typ != TypeList {
		return nil, false
	}
	return v.list, true
}

// AsDictionary returns the dictionary payload.
func (v Value) AsDictionary() (*Dictionary, bool) {
	if v.typ != TypeDictionary {
		return nil, false
	}
	return v.dict, true
}

// Len returns the payload size of a byte string, list, or dictionary.
// Other types have length 0.
func (v Value) Len() int {
	switch v.typ {
	case TypeBytes:
		return len(v.raw)
	case TypeList:
		return len(v.list)
	case TypeDictionary:
		return v.dict.Len()
	default:
		return 0
	}
}

// Index returns the i-th element of a list.
func (v Value) Index(i int) (Value, bool) {
	if v.typ != TypeList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Get looks up a dictionary key.
func (v Value) Get(key []byte) (Value, bool) {
	if v.typ != TypeDictionary {
		return Value{}, false
	}
	return v.dict.Get(key)
}

// GetString looks up a dictionary key given as a Go string.
func (v Value) GetString(key string) (Value, bool) {
	if v.typ != TypeDictionary {
		return Value{}, false
	}
	return v.dict.GetString(key)
}

// ============================================================
// Equality and Display
// ============================================================

// Equal reports deep structural equality. Dictionaries are equal when
// their entries match pairwise in order.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ {
	case TypeInteger:
		return v.num == w.num
	case TypeBytes:
		return bytes.Equal(v.raw, w.raw)
	case TypeList:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	case TypeDictionary:
		return v.dict.equal(w.dict)
	default:
		return true
	}
}

// String returns a compact human-readable form for debugging: integers
// as decimal, printable byte strings quoted, binary byte strings as
// <n bytes>, containers bracketed.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.typ {
	case TypeInteger:
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case TypeBytes:
		if isPrintable(v.raw) {
			sb.WriteString(strconv.Quote(string(v.raw)))
		} else {
			fmt.Fprintf(sb, "<%d bytes>", len(v.raw))
		}
	case TypeList:
		sb.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case TypeDictionary:
		sb.WriteByte('{')
		for i, e := range v.dict.Entries() {
			if i > 0 {
				sb.WriteString(", ")
			}
			if isPrintable(e.Key) {
				sb.WriteString(strconv.Quote(string(e.Key)))
			} else {
				fmt.Fprintf(sb, "<%d bytes>", len(e.Key))
			}
			sb.WriteString(": ")
			e.Value.writeTo(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}

// isPrintable reports whether b is entirely printable ASCII. Anything
// else is treated as binary for display purposes.
func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
