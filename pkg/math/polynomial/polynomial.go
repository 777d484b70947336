// Package polynomial implements exact interpolation of integer polynomials.
package polynomial

import "math/big"

// Polynomial is an integer polynomial stored by ascending degree.
type Polynomial struct {
	coefficients []*big.Int
}

// New returns the polynomial c_0 + c_1·x + ... + c_n·x^n. The coefficients
// are copied. With no coefficients the result is the zero polynomial.
func New(coefficients ...*big.Int) *Polynomial {
	cs := make([]*big.Int, 0, len(coefficients))
	for _, c := range coefficients {
		cs = append(cs, new(big.Int).Set(c))
	}
	if len(cs) == 0 {
		cs = append(cs, new(big.Int))
	}
	return &Polynomial{coefficients: cs}
}

// Evaluate returns P(x) using Horner's method.
func (p *Polynomial) Evaluate(x *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.coefficients[i])
	}
	return result
}

// Constant returns a copy of the constant coefficient, P(0).
func (p *Polynomial) Constant() *big.Int {
	return new(big.Int).Set(p.coefficients[0])
}

// Degree returns the number of stored coefficients minus one. Trailing zero
// coefficients are counted.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Points samples P at each x.
func (p *Polynomial) Points(xs ...*big.Int) []Point {
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: new(big.Int).Set(x), Y: p.Evaluate(x)}
	}
	return points
}
