package wasmsect

import "errors"

// ErrLEB128 is returned for truncated or oversized LEB128 values.
var ErrLEB128 = errors.New("malformed LEB128 value")

func appendULEB128(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// readULEB128 decodes a u32 and returns the number of bytes consumed.
func readULEB128(data []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i, b := range data {
		if i == 5 {
			return 0, 0, ErrLEB128
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrLEB128
}
