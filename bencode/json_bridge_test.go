package bencode

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// ============================================================
// bencode -> JSON
// ============================================================

func TestToJSON_Forms(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", Integer(42), "42"},
		{"negative", Integer(-7), "-7"},
		{"max int64", Integer(9223372036854775807), "9223372036854775807"},
		{"text bytes", String("spam"), `"spam"`},
		{"empty bytes", String(""), `""`},
		{"binary bytes", Bytes([]byte{0xff, 0xfe}), `"//4="`},
		{"list", List(Integer(1), String("a")), `[1,"a"]`},
		{"empty list", List(), "[]"},
		{"dict", Dict(Pair("n", Integer(1))), `{"n":1}`},
		{"empty dict", Dict(), "{}"},
		{"nested", Dict(Pair("files", List(Dict(Pair("length", Integer(5)))))), `{"files":[{"length":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToJSON(tt.v)
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, out)
			}
		})
	}
}

func TestToJSON_BinaryKeys(t *testing.T) {
	d := NewDictionary()
	d.Set([]byte{0xff, 0xfe}, Integer(1))
	out, err := ToJSON(DictOf(d))
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if string(out) != `{"//4=":1}` {
		t.Errorf("Unexpected JSON: %s", out)
	}
}

// ============================================================
// JSON -> bencode
// ============================================================

func TestFromJSON_Values(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"42", Integer(42)},
		{"-9223372036854775808", Integer(-9223372036854775808)},
		{`"spam"`, String("spam")},
		{`[1,"a",[]]`, List(Integer(1), String("a"), List())},
		{`{"n":1}`, Dict(Pair("n", Integer(1)))},
		{`{}`, Dict()},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("FromJSON failed: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, v)
			}
		})
	}
}

// Object keys arrive in hash order, so the bridge sorts them to keep
// the output stable.
func TestFromJSON_SortsObjectKeys(t *testing.T) {
	const input = `{"zoo":1,"apple":2,"mango":3}`
	want := Encode(Dict(
		Pair("apple", Integer(2)),
		Pair("mango", Integer(3)),
		Pair("zoo", Integer(1)),
	))
	for i := 0; i < 20; i++ {
		v, err := FromJSON([]byte(input))
		if err != nil {
			t.Fatalf("FromJSON failed: %v", err)
		}
		if enc := Encode(v); !bytes.Equal(enc, want) {
			t.Fatalf("Unstable encoding on run %d: %q", i, enc)
		}
	}
}

func TestFromJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"float", "3.14"},
		{"exponent", "1e10"},
		{"bool", "true"},
		{"null", "null"},
		{"nested null", `{"a":null}`},
		{"nested float", `[1,2.5]`},
		{"trailing data", `{"a":1} {"b":2}`},
		{"empty", ""},
		{"garbage", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromJSON([]byte(tt.input)); err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
		})
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	// Text-only values survive JSON unchanged.
	v := Dict(
		Pair("announce", String("http://tracker.example.org/announce")),
		Pair("info", Dict(
			Pair("length", Integer(262144)),
			Pair("name", String("alpha.data")),
		)),
	)
	out, err := ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	back, err := FromJSON(out)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if !back.Equal(v) {
		t.Errorf("Round trip changed value: %s", back)
	}
}

// ============================================================
// interface{} trees
// ============================================================

func TestToInterface_Shapes(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want interface{}
	}{
		{"integer", Integer(3), int64(3)},
		{"bytes", String("ab"), []byte("ab")},
		{"list", List(Integer(1), Integer(2)), []interface{}{int64(1), int64(2)}},
		{"empty list", List(), []interface{}{}},
		{"dict", Dict(Pair("k", String("v"))), map[string]interface{}{"k": []byte("v")}},
		{"zero value", Value{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToInterface(tt.v)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestToInterface_CopiesBytes(t *testing.T) {
	raw := []byte("mutate")
	v := Bytes(raw)
	got := ToInterface(v).([]byte)
	raw[0] = 'X'
	if string(got) != "mutate" {
		t.Errorf("Tree aliases the value's bytes: %q", got)
	}
}

func TestFromInterface_Widths(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want Value
	}{
		{"int", int(5), Integer(5)},
		{"int8", int8(-8), Integer(-8)},
		{"int16", int16(300), Integer(300)},
		{"int32", int32(70000), Integer(70000)},
		{"int64", int64(1 << 40), Integer(1 << 40)},
		{"uint", uint(9), Integer(9)},
		{"uint8", uint8(255), Integer(255)},
		{"uint16", uint16(65535), Integer(65535)},
		{"uint32", uint32(1 << 31), Integer(1 << 31)},
		{"uint64", uint64(1 << 62), Integer(1 << 62)},
		{"integral float64", float64(1024), Integer(1024)},
		{"integral float32", float32(512), Integer(512)},
		{"negative float", float64(-3), Integer(-3)},
		{"string", "spam", String("spam")},
		{"bytes", []byte{0x00}, Bytes([]byte{0x00})},
		{"list", []interface{}{1, "a"}, List(Integer(1), String("a"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromInterface(tt.in)
			if err != nil {
				t.Fatalf("FromInterface failed: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("Expected %s, got %s", tt.want, v)
			}
		})
	}
}

func TestFromInterface_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
	}{
		{"nil", nil},
		{"uint64 overflow", uint64(1) << 63},
		{"fractional float", 2.5},
		{"huge float", 1e300},
		{"bool", true},
		{"struct", struct{}{}},
		{"int map key", map[interface{}]interface{}{1: "a"}},
		{"nested bad element", []interface{}{1, []interface{}{true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromInterface(tt.in); err == nil {
				t.Errorf("Expected error for %#v", tt.in)
			}
		})
	}
}

func TestFromInterface_ElementErrorNamesIndex(t *testing.T) {
	_, err := FromInterface([]interface{}{1, 2, false})
	if err == nil || !strings.Contains(err.Error(), "list[2]") {
		t.Fatalf("Expected list[2] in error, got %v", err)
	}
}

func TestFromInterface_MapKeyKinds(t *testing.T) {
	// Generic decoders hand back map[interface{}]interface{}; both
	// string and []byte keys are accepted.
	in := map[interface{}]interface{}{
		"beta":          int64(2),
		[]byte("alpha"): int64(1),
	}
	v, err := FromInterface(in)
	if err != nil {
		t.Fatalf("FromInterface failed: %v", err)
	}
	if enc := Encode(v); string(enc) != "d5:alphai1e4:betai2ee" {
		t.Errorf("Unexpected encoding: %q", enc)
	}
}
