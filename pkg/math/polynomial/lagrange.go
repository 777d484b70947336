package polynomial

import (
	"fmt"
	"math/big"
)

// Point is a sample (x, y) of a polynomial.
type Point struct {
	X *big.Int
	Y *big.Int
}

// ConstantTerm returns P(0) for the unique polynomial P of degree at most k-1
// passing through the first k points, using Lagrange interpolation carried out
// in exact fractions:
//
//	P(0) = Σ_i y_i · Π_{j≠i} (−x_j) / (x_i − x_j)
//
// The order of the points does not change the result. Points beyond the first
// k are ignored; callers that select shares by ascending x must sort first.
func ConstantTerm(points []Point, k int) (*big.Int, error) {
	if err := checkPoints(points, k); err != nil {
		return nil, err
	}
	points = points[:k]

	xs := make([]*big.Int, k)
	for i, p := range points {
		xs[i] = p.X
	}

	acc := zeroFraction
	for i, p := range points {
		acc = acc.Add(basisAtZero(xs, i, NewFraction(p.Y, bigOne)))
	}
	return acc.Int()
}

// Lagrange returns the basis coefficients ℓ_i(0) for the abscissae xs, so that
// P(0) = Σ ℓ_i(0)·P(x_i) for every polynomial of degree < len(xs). The
// coefficients always sum to exactly 1.
func Lagrange(xs []*big.Int) ([]Fraction, error) {
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Y: bigOne}
	}
	if err := checkPoints(points, len(points)); err != nil {
		return nil, err
	}

	coefs := make([]Fraction, len(xs))
	for i := range xs {
		coefs[i] = basisAtZero(xs, i, oneFraction)
	}
	return coefs, nil
}

// basisAtZero multiplies start by Π_{j≠i} (−x_j) / (x_i − x_j), reducing after
// every factor to keep the operands small.
func basisAtZero(xs []*big.Int, i int, start Fraction) Fraction {
	term := start
	for j, xj := range xs {
		if i == j {
			continue
		}
		term = term.MulFrac(
			new(big.Int).Neg(xj),
			new(big.Int).Sub(xs[i], xj),
		)
	}
	return term
}

func checkPoints(points []Point, k int) error {
	if k < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, k)
	}
	if len(points) < k {
		return fmt.Errorf("%w: need %d, got %d", ErrInsufficientPoints, k, len(points))
	}

	seen := make(map[string]int, k)
	for i, p := range points[:k] {
		if p.X == nil || p.Y == nil {
			return fmt.Errorf("%w: point %d", ErrNilCoordinate, i)
		}
		key := p.X.String()
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: x = %s at points %d and %d", ErrDuplicateAbscissa, key, prev, i)
		}
		seen[key] = i
	}
	return nil
}
