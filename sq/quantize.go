// Package sq implements scalar-quantized vector storage: encoding float32
// feature vectors down to one byte per dimension (C6), a chunked storage
// structure addressed by row offset (C7), and a distance calculator over
// quantized codes (C8).
package sq

import "math"

// Quantizer holds the uniform affine scaling bounds used to map a
// dimension's float32 range onto the byte range [0,255]. The same bounds
// are shared across every dimension — this is C6's "uniform" scalar
// quantization, as opposed to a per-dimension-bounded scheme.
type Quantizer struct {
	Dim      int
	Min, Max float32
}

// NewQuantizer validates and returns a Quantizer over [min,max]. Min must
// be strictly less than max; a degenerate single-value range has nothing
// to scale.
func NewQuantizer(dim int, min, max float32) (*Quantizer, error) {
	if dim <= 0 {
		return nil, errDim
	}
	if !(max > min) {
		return nil, errBounds
	}
	return &Quantizer{Dim: dim, Min: min, Max: max}, nil
}

func (q *Quantizer) scale() float32 {
	return 255 / (q.Max - q.Min)
}

// Encode maps vec (length must equal q.Dim) to a quantized byte code: each
// component is clamped to [Min,Max], affine-scaled to [0,255], and rounded
// to the nearest integer. NaN components encode to 0, matching the
// convention that a NaN component contributes no information.
func (q *Quantizer) Encode(vec []float32) ([]byte, error) {
	if len(vec) != q.Dim {
		return nil, errDim
	}
	out := make([]byte, q.Dim)
	scale := q.scale()
	for i, v := range vec {
		if math.IsNaN(float64(v)) {
			out[i] = 0
			continue
		}
		if v < q.Min {
			v = q.Min
		} else if v > q.Max {
			v = q.Max
		}
		scaled := (v - q.Min) * scale
		out[i] = byte(math.Round(float64(scaled)))
	}
	return out, nil
}

// Decode reconstructs an approximate float32 vector from a quantized code,
// the inverse affine map of Encode (lossy: quantization is many-to-one).
func (q *Quantizer) Decode(code []byte) ([]float32, error) {
	if len(code) != q.Dim {
		return nil, errDim
	}
	out := make([]float32, q.Dim)
	invScale := (q.Max - q.Min) / 255
	for i, b := range code {
		out[i] = q.Min + float32(b)*invScale
	}
	return out, nil
}
