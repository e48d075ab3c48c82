package bencode

import "io"

// Scanner steps through a buffer holding concatenated top-level values,
// one Next call per value. It suits callers who interleave bencode with
// other data or who act on each value as it is decoded. The buffer is
// fully resident; the scanner only advances a cursor over it.
type Scanner struct {
	data []byte
	off  int
	opts ParseOptions
}

// NewScanner returns a scanner over data with default options.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// NewScannerWithOptions returns a scanner with explicit options.
func NewScannerWithOptions(data []byte, opts ParseOptions) *Scanner {
	return &Scanner{data: data, opts: opts}
}

// Next decodes the next value. It returns io.EOF once the buffer is
// exhausted. Any other error is a *DecodeError whose offset is relative
// to the start of the scanner's buffer; the cursor does not advance
// past a malformed value.
func (s *Scanner) Next() (Value, error) {
	if s.off >= len(s.data) {
		return Value{}, io.EOF
	}
	d := newDecoder(s.data, s.opts)
	d.off = s.off
	v, err := d.value(0)
	if err != nil {
		return Value{}, err
	}
	s.off = d.off
	return v, nil
}

// Offset returns the cursor position in bytes.
func (s *Scanner) Offset() int {
	return s.off
}

// Rest returns the unconsumed tail of the buffer. The slice aliases the
// scanner's input, not decoded values.
func (s *Scanner) Rest() []byte {
	return s.data[s.off:]
}
