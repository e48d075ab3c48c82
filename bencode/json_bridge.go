package bencode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between bencode values and JSON for inspection and interop.
// JSON cannot carry arbitrary octets, so the bridge is display-oriented:
// byte strings that are valid UTF-8 become JSON strings, anything else
// becomes base64. Going the other way, every JSON string becomes a byte
// string and only integral numbers are accepted.

// ToJSON converts a value to JSON bytes.
func ToJSON(v Value) ([]byte, error) {
	return json.Marshal(toJSONValue(v))
}

// FromJSON converts JSON bytes to a value. Numbers are decoded without
// a float64 detour so the full int64 range survives; numbers with a
// fractional part are an error, as are null and booleans.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x interface{}
	if err := dec.Decode(&x); err != nil {
		return Value{}, fmt.Errorf("JSON parse error: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("trailing data after JSON value")
	}
	return FromInterface(x)
}

func toJSONValue(v Value) interface{} {
	switch v.typ {
	case TypeInteger:
		return v.num

	case TypeBytes:
		if utf8.Valid(v.raw) {
			return string(v.raw)
		}
		return base64.StdEncoding.EncodeToString(v.raw)

	case TypeList:
		items := make([]interface{}, 0, len(v.list))
		for _, el := range v.list {
			items = append(items, toJSONValue(el))
		}
		return items

	case TypeDictionary:
		obj := make(map[string]interface{}, v.dict.Len())
		for _, ent := range v.dict.Entries() {
			key := string(ent.Key)
			if !utf8.Valid(ent.Key) {
				key = base64.StdEncoding.EncodeToString(ent.Key)
			}
			obj[key] = toJSONValue(ent.Value)
		}
		return obj

	default:
		return nil
	}
}

// ============================================================
// Generic Interface Trees
// ============================================================
//
// The common currency for the CBOR and MessagePack transcoders and for
// callers holding plain Go data. Byte strings stay []byte here; only
// the JSON layer above coerces them to text.

// ToInterface converts a value to a generic Go tree: int64, []byte,
// []interface{}, or map[string]interface{}. The zero Value becomes nil.
func ToInterface(v Value) interface{} {
	switch v.typ {
	case TypeInteger:
		return v.num

	case TypeBytes:
		// Never nil, even for empty strings: the CBOR and MessagePack
		// encoders turn a nil slice into null instead of an empty string.
		out := make([]byte, len(v.raw))
		copy(out, v.raw)
		return out

	case TypeList:
		items := make([]interface{}, 0, len(v.list))
		for _, el := range v.list {
			items = append(items, ToInterface(el))
		}
		return items

	case TypeDictionary:
		obj := make(map[string]interface{}, v.dict.Len())
		for _, ent := range v.dict.Entries() {
			obj[string(ent.Key)] = ToInterface(ent.Value)
		}
		return obj

	default:
		return nil
	}
}

// FromInterface converts a generic Go tree to a value. It accepts the
// shapes Go decoders produce: all integer widths, strings, []byte,
// json.Number, []interface{}, and maps keyed by string or interface{}.
// Floats are accepted only with a zero fractional part. Dictionaries
// built from Go maps are key-sorted, since map iteration order would
// otherwise leak into the encoding.
func FromInterface(x interface{}) (Value, error) {
	switch val := x.(type) {
	case int:
		return Integer(int64(val)), nil
	case int8:
		return Integer(int64(val)), nil
	case int16:
		return Integer(int64(val)), nil
	case int32:
		return Integer(int64(val)), nil
	case int64:
		return Integer(val), nil
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return Integer(int64(val)), nil
	case uint16:
		return Integer(int64(val)), nil
	case uint32:
		return Integer(int64(val)), nil
	case uint64:
		return fromUint(val)

	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)

	case json.Number:
		n, err := strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("number %s does not fit a bencode integer", val)
		}
		return Integer(n), nil

	case string:
		return String(val), nil
	case []byte:
		return Bytes(val), nil

	case []interface{}:
		items := make([]Value, 0, len(val))
		for i, elem := range val {
			bv, err := FromInterface(elem)
			if err != nil {
				return Value{}, fmt.Errorf("list[%d]: %w", i, err)
			}
			items = append(items, bv)
		}
		return List(items...), nil

	case map[string]interface{}:
		entries := make([]Entry, 0, len(val))
		for k, elem := range val {
			bv, err := FromInterface(elem)
			if err != nil {
				return Value{}, fmt.Errorf("map[%q]: %w", k, err)
			}
			entries = append(entries, Entry{Key: []byte(k), Value: bv})
		}
		return dictFromEntries(entries), nil

	case map[interface{}]interface{}:
		entries := make([]Entry, 0, len(val))
		for k, elem := range val {
			var key []byte
			switch kv := k.(type) {
			case string:
				key = []byte(kv)
			case []byte:
				key = kv
			default:
				return Value{}, fmt.Errorf("map key %v (%T) is not a byte string", k, k)
			}
			bv, err := FromInterface(elem)
			if err != nil {
				return Value{}, fmt.Errorf("map[%q]: %w", key, err)
			}
			entries = append(entries, Entry{Key: key, Value: bv})
		}
		return dictFromEntries(entries), nil

	default:
		return Value{}, fmt.Errorf("cannot represent %T in bencode", x)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("integer %d does not fit a bencode integer", u)
	}
	return Integer(int64(u)), nil
}

func fromFloat(f float64) (Value, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("bencode has no float type (got %v)", f)
	}
	if f < -9007199254740991 || f > 9007199254740991 {
		return Value{}, fmt.Errorf("float %v is outside the exact integer range", f)
	}
	return Integer(int64(f)), nil
}

func dictFromEntries(entries []Entry) Value {
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Key, entries[j].Key) < 0
	})
	d := NewDictionary()
	for _, ent := range entries {
		d.Set(ent.Key, ent.Value)
	}
	return Value{typ: TypeDictionary, dict: d}
}
