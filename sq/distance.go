package sq

import (
	"fmt"
	"math"

	"github.com/fenwick-labs/colvec"
	"github.com/fenwick-labs/colvec/internal/cpufeature"
)

// Metric selects the distance function a DistCalculator applies over
// quantized codes.
type Metric int

const (
	MetricL2 Metric = iota
	MetricCosine
	MetricDot
)

// DistCalculator computes distances in quantized-code space between one
// fixed query code and any number of stored row codes, and can rescale a
// quantized-space distance back to an estimate in the original float
// space (inverse_scalar_dist).
type DistCalculator struct {
	Metric    Metric
	Quantizer *Quantizer
	Query     []byte
}

// NewDistCalculator builds a calculator for a raw (unquantized) query
// vector, quantizing it with q first so it shares scale with stored codes.
func NewDistCalculator(metric Metric, q *Quantizer, query []float32) (*DistCalculator, error) {
	code, err := q.Encode(query)
	if err != nil {
		return nil, err
	}
	return &DistCalculator{Metric: metric, Quantizer: q, Query: code}, nil
}

// DistCalculatorFromID builds a calculator whose query is a row already
// present in storage, addressed by its row ID — used for self-similarity
// and duplicate-detection queries where the query vector is itself a
// stored row rather than a fresh external vector.
func DistCalculatorFromID(metric Metric, q *Quantizer, storage *Storage, rowID uint64) (*DistCalculator, error) {
	code, err := storage.Lookup(rowID)
	if err != nil {
		return nil, err
	}
	return &DistCalculator{Metric: metric, Quantizer: q, Query: append([]byte(nil), code...)}, nil
}

// Distance returns the distance in quantized-code space between the
// calculator's query and code. Lower means more similar for L2 and
// cosine-distance; for dot product, higher means more similar, so the
// returned value is the negated dot product, keeping "lower is closer"
// uniform across metrics.
func (d *DistCalculator) Distance(code []byte) (float32, error) {
	if len(code) != len(d.Query) {
		return 0, fmt.Errorf("%w: code length %d, want %d", colvec.ErrUnsupportedBlockShape, len(code), len(d.Query))
	}
	switch d.Metric {
	case MetricL2:
		return l2(d.Query, code), nil
	case MetricCosine:
		return cosineDistance(d.Query, code), nil
	case MetricDot:
		return -dot(d.Query, code), nil
	default:
		return 0, fmt.Errorf("%w: unsupported metric %d", colvec.ErrPolicyViolation, d.Metric)
	}
}

// InverseScalarDistance rescales an L2 distance computed in quantized-code
// space back into an estimate of the corresponding distance in the
// original float space, undoing the per-component scale factor introduced
// by Encode's affine map (Distance's L2 is the Euclidean norm, so the
// factor applies once). Cosine and dot distances are already
// scale-invariant or reported in raw-code units and pass through
// unchanged.
func (d *DistCalculator) InverseScalarDistance(quantDist float32) float32 {
	if d.Metric != MetricL2 {
		return quantDist
	}
	span := d.Quantizer.Max - d.Quantizer.Min
	componentScale := span / 255
	return quantDist * componentScale
}

// Prefetch issues a read touch over code's cache lines ahead of a scoring
// pass, hinting the line into cache without otherwise affecting program
// state. Go has no portable prefetch intrinsic, so this approximates it by
// reading one byte per cache line — cheap, and enough to trigger hardware
// prefetch-on-access for the lines Distance is about to read in full.
func Prefetch(code []byte) {
	line := cpufeature.CacheLineSize()
	var sink byte
	for i := 0; i < len(code); i += line {
		sink ^= code[i]
	}
	_ = sink
}

func l2(a, b []byte) float32 {
	var sum int64
	for i := range a {
		d := int64(a[i]) - int64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(float64(sum)))
}

func dot(a, b []byte) float32 {
	var sum int64
	for i := range a {
		sum += int64(a[i]) * int64(b[i])
	}
	return float32(sum)
}

func cosineDistance(a, b []byte) float32 {
	var dotv, na, nb int64
	for i := range a {
		dotv += int64(a[i]) * int64(b[i])
		na += int64(a[i]) * int64(a[i])
		nb += int64(b[i]) * int64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	cos := float64(dotv) / (math.Sqrt(float64(na)) * math.Sqrt(float64(nb)))
	return float32(1 - cos)
}
