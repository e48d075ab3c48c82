package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// SortKeys emits dictionary keys in lexicographic byte order
	// instead of insertion order. Together with the minimal integer
	// form the encoder always produces, this gives the canonical
	// encoding.
	SortKeys bool
}

// Encode serializes a value. Dictionaries keep insertion order, so a
// decoded value whose input had no duplicate keys re-encodes to the
// original bytes. The zero Value encodes to nothing.
func Encode(v Value) []byte {
	return EncodeWithOptions(v, EncodeOptions{})
}

// EncodeCanonical serializes a value in canonical form: dictionary keys
// sorted at every nesting level.
func EncodeCanonical(v Value) []byte {
	return EncodeWithOptions(v, EncodeOptions{SortKeys: true})
}

// EncodeWithOptions serializes a value with explicit options.
func EncodeWithOptions(v Value, opts EncodeOptions) []byte {
	e := &encoder{opts: opts}
	e.encode(v)
	return e.buf.Bytes()
}

// EncodeAll serializes a sequence of values back-to-back, the inverse
// of Parse.
func EncodeAll(vs []Value) []byte {
	return EncodeAllWithOptions(vs, EncodeOptions{})
}

// EncodeAllWithOptions is EncodeAll with explicit options.
func EncodeAllWithOptions(vs []Value, opts EncodeOptions) []byte {
	e := &encoder{opts: opts}
	for _, v := range vs {
		e.encode(v)
	}
	return e.buf.Bytes()
}

type encoder struct {
	buf  bytes.Buffer
	opts EncodeOptions
}

func (e *encoder) encode(v Value) {
	switch v.typ {
	case TypeInteger:
		e.buf.WriteByte('i')
		e.buf.WriteString(strconv.FormatInt(v.num, 10))
		e.buf.WriteByte('e')

	case TypeBytes:
		e.byteString(v.raw)

	case TypeList:
		e.buf.WriteByte('l')
		for _, el := range v.list {
			e.encode(el)
		}
		e.buf.WriteByte('e')

	case TypeDictionary:
		e.buf.WriteByte('d')
		entries := v.dict.Entries()
		if e.opts.SortKeys {
			entries = sortedEntries(entries)
		}
		for _, ent := range entries {
			e.byteString(ent.Key)
			e.encode(ent.Value)
		}
		e.buf.WriteByte('e')
	}
}

func (e *encoder) byteString(b []byte) {
	e.buf.WriteString(strconv.Itoa(len(b)))
	e.buf.WriteByte(':')
	e.buf.Write(b)
}

func sortedEntries(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Key, out[j].Key) < 0
	})
	return out
}

// Canonicalize returns a value whose dictionaries, at every nesting
// level, hold their entries in lexicographic key order. Scalar payloads
// are shared with the input; container spines and keys are fresh.
// Encode(Canonicalize(v)) equals EncodeCanonical(v).
func Canonicalize(v Value) Value {
	switch v.typ {
	case TypeList:
		elems := make([]Value, len(v.list))
		for i, el := range v.list {
			elems[i] = Canonicalize(el)
		}
		return Value{typ: TypeList, list: elems}

	case TypeDictionary:
		d := NewDictionary()
		for _, ent := range sortedEntries(v.dict.Entries()) {
			d.put(append([]byte(nil), ent.Key...), Canonicalize(ent.Value))
		}
		return Value{typ: TypeDictionary, dict: d}

	default:
		return v
	}
}
