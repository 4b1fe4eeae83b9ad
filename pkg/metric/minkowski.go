// pkg/metric/minkowski.go
package metric

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidP is returned when a caller asks for p < 1.
var ErrInvalidP = errors.New("metric: p must be >= 1 (use math.Inf(1) for Chebyshev)")

// Minkowski computes the Minkowski p-distance family over d-dimensional
// float64 points, and its cheaper "reduced" surrogate used during tree
// traversal. p is frozen once constructed.
type Minkowski struct {
	p float64
}

// New validates p and returns a Minkowski metric. p must be >= 1, or
// math.Inf(1) for the Chebyshev (max-norm) limit.
func New(p float64) (*Minkowski, error) {
	if !(p >= 1) {
		return nil, errors.Wrapf(ErrInvalidP, "got p=%v", p)
	}
	return &Minkowski{p: p}, nil
}

// P returns the frozen exponent.
func (m *Minkowski) P() float64 { return m.p }

// Distance returns the true p-distance d_p(x, y).
func (m *Minkowski) Distance(x, y []float64) float64 {
	switch {
	case math.IsInf(m.p, 1):
		return chebyshev(x, y)
	case m.p == 1:
		return manhattan(x, y)
	case m.p == 2:
		return math.Sqrt(sumSquares(x, y))
	default:
		return math.Pow(sumPow(x, y, m.p), 1/m.p)
	}
}

// Reduced returns the reduced distance ρ_p(x, y): identical to d_p for
// p=1 and p=∞, and the pre-root sum for p=2 and general p.
func (m *Minkowski) Reduced(x, y []float64) float64 {
	switch {
	case math.IsInf(m.p, 1):
		return chebyshev(x, y)
	case m.p == 1:
		return manhattan(x, y)
	case m.p == 2:
		return sumSquares(x, y)
	default:
		return sumPow(x, y, m.p)
	}
}

// DFromRho converts a reduced distance back to a true distance.
func (m *Minkowski) DFromRho(rho float64) float64 {
	switch {
	case math.IsInf(m.p, 1), m.p == 1:
		return rho
	case m.p == 2:
		return math.Sqrt(rho)
	default:
		return math.Pow(rho, 1/m.p)
	}
}

// RhoFromD converts a true distance to its reduced form.
func (m *Minkowski) RhoFromD(d float64) float64 {
	switch {
	case math.IsInf(m.p, 1), m.p == 1:
		return d
	case m.p == 2:
		return d * d
	default:
		return math.Pow(d, m.p)
	}
}

func chebyshev(x, y []float64) float64 {
	var max float64
	for i := range x {
		diff := math.Abs(x[i] - y[i])
		if diff > max {
			max = diff
		}
	}
	return max
}

func manhattan(x, y []float64) float64 {
	var sum float64
	for i := range x {
		sum += math.Abs(x[i] - y[i])
	}
	return sum
}

func sumSquares(x, y []float64) float64 {
	var sum float64
	for i := range x {
		diff := x[i] - y[i]
		sum += diff * diff
	}
	return sum
}

func sumPow(x, y []float64, p float64) float64 {
	var sum float64
	for i := range x {
		sum += math.Pow(math.Abs(x[i]-y[i]), p)
	}
	return sum
}
