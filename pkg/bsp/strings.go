package bsp

import (
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/lightsrad/pkg/encoding"
)

// StringData is the texture name blob: NUL-terminated strings addressed by
// byte offset.
type StringData []byte

// At returns the string starting at offset, up to the next NUL or the end
// of the blob.
func (s StringData) At(offset int32) (string, error) {
	if offset < 0 || int(offset) >= len(s) {
		return "", fmt.Errorf("string offset %d outside %d-byte string data", offset, len(s))
	}
	return encoding.CString(s[offset:]), nil
}

func decodeStringData(data []byte) (any, error) {
	blob := make(StringData, len(data))
	copy(blob, data)
	return blob, nil
}

// decodeInt32s handles the packed integer lumps (surfedges, string table).
func decodeInt32s(data []byte) (any, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of 4", ErrMisalignedLumpSize, len(data))
	}
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}
