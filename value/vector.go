package value

import (
	"fmt"
	"math"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
)

// Vector is a tagged numeric array with a model label (spec §3.1).
type Vector struct {
	Model string
	Data  []float64
}

func (*Vector) Kind() Kind { return KindVector }

// NewVector builds a vector under the given model label.
func NewVector(model string, data []float64) *Vector {
	return &Vector{Model: model, Data: data}
}

func (v *Vector) checkDimension(other *Vector, span ast.Span) error {
	if len(v.Data) != len(other.Data) {
		return rillerr.TypeError(span, fmt.Sprintf(
			"vector dimension mismatch: %d vs %d", len(v.Data), len(other.Data)))
	}
	return nil
}

// Dot returns the dot product of v and other.
func (v *Vector) Dot(other *Vector, span ast.Span) (float64, error) {
	if err := v.checkDimension(other, span); err != nil {
		return 0, err
	}
	var sum float64
	for i := range v.Data {
		sum += v.Data[i] * other.Data[i]
	}
	return sum, nil
}

// L2Norm returns the Euclidean norm of v.
func (v *Vector) L2Norm() float64 {
	var sum float64
	for _, x := range v.Data {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns cos(theta) between v and other.
func (v *Vector) CosineSimilarity(other *Vector, span ast.Span) (float64, error) {
	dot, err := v.Dot(other, span)
	if err != nil {
		return 0, err
	}
	na, nb := v.L2Norm(), other.L2Norm()
	if na == 0 || nb == 0 {
		return 0, rillerr.TypeError(span, "cosine similarity undefined for a zero vector")
	}
	return dot / (na * nb), nil
}

// EuclideanDistance returns the straight-line distance between v and other.
func (v *Vector) EuclideanDistance(other *Vector, span ast.Span) (float64, error) {
	if err := v.checkDimension(other, span); err != nil {
		return 0, err
	}
	var sum float64
	for i := range v.Data {
		d := v.Data[i] - other.Data[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Normalize returns v scaled to unit L2 norm.
func (v *Vector) Normalize(span ast.Span) (*Vector, error) {
	norm := v.L2Norm()
	if norm == 0 {
		return nil, rillerr.TypeError(span, "cannot normalize a zero vector")
	}
	out := make([]float64, len(v.Data))
	for i, x := range v.Data {
		out[i] = x / norm
	}
	return NewVector(v.Model, out), nil
}
