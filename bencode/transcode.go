package bencode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ============================================================
// CBOR / MessagePack Transcoding
// ============================================================
//
// Re-encodes bencode documents into two binary interchange formats that
// carry byte strings natively, with no base64 detour as in JSON. CBOR
// output uses RFC 8949 Core Deterministic encoding, so equal documents
// transcode to equal bytes.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		panic(err)
	}
	cborEnc, cborDec = em, dm
}

// ToCBOR re-encodes a value as deterministic CBOR. Dictionary keys
// become text strings, byte-string values become CBOR byte strings.
func ToCBOR(v Value) ([]byte, error) {
	return cborEnc.Marshal(ToInterface(v))
}

// FromCBOR decodes a CBOR document into a value. Maps become key-sorted
// dictionaries; anything bencode cannot represent (floats with a
// fraction, booleans, null, tags) is an error.
func FromCBOR(data []byte) (Value, error) {
	var x interface{}
	if err := cborDec.Unmarshal(data, &x); err != nil {
		return Value{}, fmt.Errorf("CBOR parse error: %w", err)
	}
	return FromInterface(x)
}

// ToMsgpack re-encodes a value as MessagePack.
func ToMsgpack(v Value) ([]byte, error) {
	return msgpack.Marshal(ToInterface(v))
}

// FromMsgpack decodes a MessagePack document into a value, under the
// same representability rules as FromCBOR.
func FromMsgpack(data []byte) (Value, error) {
	var x interface{}
	if err := msgpack.Unmarshal(data, &x); err != nil {
		return Value{}, fmt.Errorf("MessagePack parse error: %w", err)
	}
	return FromInterface(x)
}
