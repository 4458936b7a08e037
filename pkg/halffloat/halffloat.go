// Package halffloat decodes IEEE-754 half-precision floats, used by the
// animation and model decoders for packed rotation and UV data. Decoding
// is delegated to github.com/x448/float16 rather than hand-rolled, per
// the design note that hardware support must not be assumed.
package halffloat

import "github.com/x448/float16"

// Decode converts a 16-bit IEEE-754 half-precision value to a float32.
func Decode(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}
