package sq

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/therootcompany/xz"
)

// ImportSeedVectors decompresses an xz-compressed stream of little-endian
// float32 feature vectors (dim floats per vector, densely packed with no
// framing) and returns them, used to bulk-load a training or seed sample
// ahead of fitting a Quantizer's bounds.
func ImportSeedVectors(r io.Reader, dim int) ([][]float32, error) {
	if dim <= 0 {
		return nil, errDim
	}
	zr, err := xz.NewReader(r, xz.DefaultDictMax)
	if err != nil {
		return nil, fmt.Errorf("sq: opening xz seed stream: %w", err)
	}

	var vectors [][]float32
	stride := dim * 4
	buf := make([]byte, stride)
	for {
		if _, err := io.ReadFull(zr, buf); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("sq: reading seed vector: %w", err)
		}
		vec := make([]float32, dim)
		for i := 0; i < dim; i++ {
			bits := binary.LittleEndian.Uint32(buf[i*4:])
			vec[i] = math.Float32frombits(bits)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

// FitBounds computes the tightest [min,max] bounds spanning every
// component of every vector in samples, for use constructing a Quantizer.
// NaN components are skipped (Encode maps them to 0 regardless of bounds).
func FitBounds(samples [][]float32) (min, max float32, ok bool) {
	min, max = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, vec := range samples {
		for _, v := range vec {
			if v != v { // NaN
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			ok = true
		}
	}
	return min, max, ok
}
