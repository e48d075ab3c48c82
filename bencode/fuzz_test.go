package bencode

import (
	"bytes"
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"i42e",
		"i-1e",
		"i0e",
		"0:",
		"4:spam",
		"le",
		"de",
		"l4:spam4:eggsi22ee",
		"d3:cow3:moo4:spam4:eggse",
		"d4:infod6:lengthi262144e4:name5:a.txtee",
		"d1:a1:x1:a1:ye",
		"lllleeee",
		"i42",
		"i03e",
		"5:spam",
		"d3:cowe",
		"x",
		"llllllllllllllllllllllllllllllllllllllllllllllllle",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		vals, err := ParseWithOptions(data, ParseOptions{MaxDepth: 64})
		if err != nil {
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("Error is not a DecodeError: %v", err)
			}
			if decErr.Offset < 0 || decErr.Offset > len(data) {
				t.Fatalf("Offset %d outside input of %d bytes", decErr.Offset, len(data))
			}
			return
		}

		// Anything accepted must re-encode, re-parse to an equal
		// sequence, and re-encode to identical bytes.
		enc := EncodeAll(vals)
		again, err := ParseWithOptions(enc, ParseOptions{MaxDepth: 64})
		if err != nil {
			t.Fatalf("Re-parse of %q failed: %v", enc, err)
		}
		if len(again) != len(vals) {
			t.Fatalf("Re-parse gave %d values, want %d", len(again), len(vals))
		}
		for i := range vals {
			if !vals[i].Equal(again[i]) {
				t.Fatalf("Value %d changed across re-encode: %s vs %s", i, vals[i], again[i])
			}
		}
		if enc2 := EncodeAll(again); !bytes.Equal(enc, enc2) {
			t.Fatalf("Encoding is not idempotent: %q vs %q", enc, enc2)
		}

		// Canonical form is a fixed point as well.
		canon := make([]Value, len(vals))
		for i := range vals {
			canon[i] = Canonicalize(vals[i])
		}
		cenc := EncodeAll(canon)
		cvals, err := ParseWithOptions(cenc, ParseOptions{MaxDepth: 64})
		if err != nil {
			t.Fatalf("Re-parse of canonical form failed: %v", err)
		}
		if cenc2 := EncodeAllWithOptions(cvals, EncodeOptions{SortKeys: true}); !bytes.Equal(cenc, cenc2) {
			t.Fatalf("Canonical form is not a fixed point: %q vs %q", cenc, cenc2)
		}
	})
}

func FuzzParseOne(f *testing.F) {
	f.Add([]byte("i3e1:a"))
	f.Add([]byte("4:spamxyz"))
	f.Add([]byte("led1:ki1ee"))
	f.Add([]byte("i3"))

	f.Fuzz(func(t *testing.T, data []byte) {
		v, rest, err := ParseOneWithOptions(data, ParseOptions{MaxDepth: 64})
		if err != nil {
			return
		}
		if len(rest) > len(data) {
			t.Fatalf("Rest grew: %d > %d bytes", len(rest), len(data))
		}
		consumed := len(data) - len(rest)
		if consumed < 1 {
			t.Fatalf("Accepted a value from %d bytes", consumed)
		}
		// The consumed prefix must parse to the same value on its own.
		solo, rest2, err := ParseOneWithOptions(data[:consumed], ParseOptions{MaxDepth: 64})
		if err != nil {
			t.Fatalf("Consumed prefix %q does not re-parse: %v", data[:consumed], err)
		}
		if len(rest2) != 0 {
			t.Fatalf("Consumed prefix %q left %d bytes", data[:consumed], len(rest2))
		}
		if !v.Equal(solo) {
			t.Fatalf("Prefix re-parse changed value: %s vs %s", v, solo)
		}
	})
}
