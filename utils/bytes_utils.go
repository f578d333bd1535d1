package utils

import (
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Transaction hashes travel around as hex strings, these two convert between
// that form and raw bytes.
func BytesToHex(bytes []byte) string {
	return hex.EncodeToString(bytes)
}

func HexToBytes(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

// Int64ToBytes encodes an output index for hashing and signing.
func Int64ToBytes(i int64) []byte {
	b := make([]byte, 8)
	binary.PutVarint(b, i)
	return b
}

// Float64ToBytes encodes an output value for hashing and signing, using the
// IEEE 754 bit pattern so every distinct value serializes distinctly.
func Float64ToBytes(f float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return b
}
