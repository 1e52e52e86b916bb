package facematch

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode packs an embedding as little-endian float32 bytes for storage in a
// BYTEA column.
func Encode(emb []float32) []byte {
	buf := make([]byte, 4*len(emb))
	for i, v := range emb {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// Decode unpacks a stored embedding. The byte length must be a whole number
// of float32 values.
func Decode(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob: %d bytes", len(data))
	}
	emb := make([]float32, len(data)/4)
	for i := range emb {
		emb[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return emb, nil
}
