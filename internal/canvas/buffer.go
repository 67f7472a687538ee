package canvas

import (
	"encoding/binary"
	"math"
)

// Record sizes of the byte encodings.
const (
	// ColorRangeSize is high.rgb then low.rgb, six little-endian float32.
	ColorRangeSize = 24
	// StrengthSize is one little-endian float32.
	StrengthSize = 4
)

// AppendBytes appends the color buffer to dst in row-major order, one
// ColorRangeSize record per tile.
func (c *Canvas) AppendBytes(dst []byte) []byte {
	for _, r := range c.ranges {
		for _, v := range r.High {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
		for _, v := range r.Low {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	}
	return dst
}

// StrengthBytes appends the strength buffer to dst in row-major order, one
// StrengthSize record per tile.
func (c *Canvas) StrengthBytes(dst []byte) []byte {
	for _, s := range c.strengths {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(s)))
	}
	return dst
}
