// Package bencode implements bencoding of data as defined in BEP 3.
//
// Bencode is the wire format of the BitTorrent ecosystem: .torrent
// metainfo files, tracker responses, and DHT messages. It has exactly
// four value kinds and a one-byte dispatch for each, which makes it
// self-delimiting and cheap to parse.
//
// # Data Model
//
// Scalars:    integer (signed 64-bit), byte string (arbitrary octets)
// Containers: list, dictionary (insertion-ordered, unique keys)
//
// Byte strings are raw octets. Nothing in this package assumes UTF-8;
// text is a caller-level interpretation.
//
// # Wire Syntax
//
// Integer:     i<digits>e        i42e, i-7e, i0e
// Byte string: <length>:<bytes>  4:spam, 0:
// List:        l<values>e        l4:spami42ee
// Dictionary:  d(<key><value>)*e d3:cow3:mooe
//
// Redundant forms are rejected: no leading zeros in lengths or
// integers, no negative zero, no stray signs.
//
// # Decoding
//
// Parse decodes a whole buffer of concatenated values; ParseOne decodes
// a single value and returns the remainder. Decoding is strict and
// all-or-nothing: malformed input yields a *DecodeError carrying a
// sentinel cause and the byte offset of the fault, never a partial
// result. Decoded values own their memory and never alias the input.
//
//	vals, err := bencode.Parse(data)
//	var decErr *bencode.DecodeError
//	if errors.As(err, &decErr) {
//	    log.Printf("bad input at offset %d", decErr.Offset)
//	}
//
// # Encoding
//
// Encode is the exact inverse of Parse on canonical input. Dictionaries
// serialize in insertion order by default; EncodeCanonical sorts keys
// at every level, producing the canonical form trackers and infohash
// computations rely on.
//
// # Interop
//
// ToJSON/FromJSON, ToCBOR/FromCBOR, and ToMsgpack/FromMsgpack re-encode
// documents for systems that do not speak bencode. The binary bridges
// keep byte strings intact; the JSON bridge falls back to base64 for
// payloads that are not valid UTF-8.
package bencode
