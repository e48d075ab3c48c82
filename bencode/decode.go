package bencode

import (
	"io"
	"strconv"
)

// DefaultMaxDepth bounds list/dictionary nesting when ParseOptions does
// not override it. Deep enough for any real metainfo file, shallow
// enough that a hostile buffer of repeated 'l' bytes cannot exhaust the
// goroutine stack.
const DefaultMaxDepth = 1024

// ParseOptions controls decoding.
type ParseOptions struct {
	// MaxDepth is the maximum container nesting depth. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Parse decodes a buffer holding zero or more concatenated top-level
// values and returns them in order. Empty input yields an empty
// sequence. Decoding is all-or-nothing: if any value is malformed,
// Parse returns only the error.
func Parse(data []byte) ([]Value, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, opts ParseOptions) ([]Value, error) {
	s := NewScannerWithOptions(data, opts)
	var vals []Value
	for {
		v, err := s.Next()
		if err == io.EOF {
			return vals, nil
		}
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
}

// ParseOne decodes exactly one value from the front of data and returns
// it together with the unconsumed remainder. Empty input is an error:
// there is no value to decode.
func ParseOne(data []byte) (Value, []byte, error) {
	return ParseOneWithOptions(data, ParseOptions{})
}

// ParseOneWithOptions is ParseOne with explicit options.
func ParseOneWithOptions(data []byte, opts ParseOptions) (Value, []byte, error) {
	d := newDecoder(data, opts)
	v, err := d.value(0)
	if err != nil {
		return Value{}, nil, err
	}
	return v, data[d.off:], nil
}

// ============================================================
// Decoder
// ============================================================
//
// Recursive descent over the input slice with a byte cursor. One method
// per production; each leaves the cursor on the byte after what it
// consumed. All payloads are copied out of the input.

type decoder struct {
	data     []byte
	off      int
	maxDepth int
}

func newDecoder(data []byte, opts ParseOptions) *decoder {
	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	return &decoder{data: data, maxDepth: depth}
}

func (d *decoder) fail(err error, off int) error {
	return &DecodeError{Offset: off, Err: err}
}

// value decodes one value at the cursor. depth counts enclosing
// containers; the top level is 0.
func (d *decoder) value(depth int) (Value, error) {
	if d.off >= len(d.data) {
		return Value{}, d.fail(ErrTruncated, len(d.data))
	}
	switch c := d.data[d.off]; {
	case isDigit(c):
		raw, err := d.byteString()
		if err != nil {
			return Value{}, err
		}
		return Value{typ: TypeBytes, raw: raw}, nil
	case c == 'i':
		return d.integer()
	case c == 'l':
		return d.listValue(depth)
	case c == 'd':
		return d.dictValue(depth)
	default:
		return Value{}, d.fail(ErrUnexpectedToken, d.off)
	}
}

// byteString decodes <len>:<payload>. The caller has checked that the
// cursor is on a digit. The returned slice is a fresh copy.
func (d *decoder) byteString() ([]byte, error) {
	start := d.off

	for d.off < len(d.data) && isDigit(d.data[d.off]) {
		d.off++
	}
	if d.off >= len(d.data) {
		return nil, d.fail(ErrTruncated, len(d.data))
	}
	if d.data[d.off] != ':' {
		return nil, d.fail(ErrInvalidLength, d.off)
	}

	digits := d.data[start:d.off]
	if len(digits) > 1 && digits[0] == '0' {
		return nil, d.fail(ErrInvalidLength, start)
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		// Digits only, so the only failure mode is overflow.
		return nil, d.fail(ErrInvalidLength, start)
	}
	d.off++ // ':'

	if n > int64(len(d.data)-d.off) {
		return nil, d.fail(ErrTruncated, len(d.data))
	}
	payload := append([]byte(nil), d.data[d.off:d.off+int(n)]...)
	d.off += int(n)
	return payload, nil
}

// integer decodes i<digits>e with an optional leading minus.
func (d *decoder) integer() (Value, error) {
	start := d.off
	d.off++ // 'i'

	body := d.off
	if d.off < len(d.data) && d.data[d.off] == '-' {
		d.off++
	}
	for d.off < len(d.data) && isDigit(d.data[d.off]) {
		d.off++
	}
	if d.off >= len(d.data) {
		return Value{}, d.fail(ErrTruncated, len(d.data))
	}
	if d.data[d.off] != 'e' {
		return Value{}, d.fail(ErrInvalidInteger, d.off)
	}

	digits := d.data[body:d.off]
	if !validIntegerDigits(digits) {
		return Value{}, d.fail(ErrInvalidInteger, start)
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		// Shape validated above, so this is a 64-bit range overflow.
		return Value{}, d.fail(ErrInvalidInteger, start)
	}
	d.off++ // 'e'
	return Value{typ: TypeInteger, num: n}, nil
}

// validIntegerDigits checks the canonical integer shape: at least one
// digit, no leading zero on multi-digit runs, no negative zero.
func validIntegerDigits(b []byte) bool {
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}
	if len(b) == 0 {
		return false
	}
	if b[0] == '0' && (neg || len(b) > 1) {
		return false
	}
	return true
}

// listValue decodes l<values>e. depth is the count of containers
// enclosing the list itself.
func (d *decoder) listValue(depth int) (Value, error) {
	if depth+1 > d.maxDepth {
		return Value{}, d.fail(ErrDepthExceeded, d.off)
	}
	d.off++ // 'l'

	var elems []Value
	for {
		if d.off >= len(d.data) {
			return Value{}, d.fail(ErrTruncated, len(d.data))
		}
		if d.data[d.off] == 'e' {
			d.off++
			return Value{typ: TypeList, list: elems}, nil
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

// dictValue decodes d(<key><value>)*e. Keys must be byte strings; key
// order is not validated, and a duplicate key keeps its first position
// with the last value.
func (d *decoder) dictValue(depth int) (Value, error) {
	if depth+1 > d.maxDepth {
		return Value{}, d.fail(ErrDepthExceeded, d.off)
	}
	d.off++ // 'd'

	dict := NewDictionary()
	for {
		if d.off >= len(d.data) {
			return Value{}, d.fail(ErrTruncated, len(d.data))
		}
		switch c := d.data[d.off]; {
		case c == 'e':
			d.off++
			return Value{typ: TypeDictionary, dict: dict}, nil
		case isDigit(c):
			// byte-string key
		case c == 'i' || c == 'l' || c == 'd':
			return Value{}, d.fail(ErrNonStringKey, d.off)
		default:
			return Value{}, d.fail(ErrUnexpectedToken, d.off)
		}

		key, err := d.byteString()
		if err != nil {
			return Value{}, err
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		dict.put(key, v)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
