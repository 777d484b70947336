// Package test holds fixtures shared by the package tests and the CLI
// self-checks: integer polynomials, abscissae and encoded share sets.
package test

import (
	"math/big"
	"math/rand"

	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/luxfi/reconstruct/pkg/share"
)

// Ints converts int64 literals to big integers.
func Ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// Abscissae returns 1, 2, ..., n.
func Abscissae(n int) []*big.Int {
	xs := make([]*big.Int, n)
	for i := range xs {
		xs[i] = big.NewInt(int64(i + 1))
	}
	return xs
}

// RandomInt returns a uniformly random integer in [0, 2^bits).
func RandomInt(rng *rand.Rand, bits int) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return new(big.Int).Rand(rng, limit)
}

// RandomPolynomial returns a polynomial of the given degree whose
// coefficients are random integers of at most bits bits. The constant term is
// non-negative; the other coefficients may be negative.
func RandomPolynomial(rng *rand.Rand, degree, bits int) *polynomial.Polynomial {
	coefs := make([]*big.Int, degree+1)
	for i := range coefs {
		c := RandomInt(rng, bits)
		if i > 0 && rng.Intn(2) == 0 {
			c.Neg(c)
		}
		coefs[i] = c
	}
	return polynomial.New(coefs...)
}

// PositivePolynomial is RandomPolynomial with every coefficient
// non-negative, so that its values at positive abscissae can be encoded as
// unsigned share values.
func PositivePolynomial(rng *rand.Rand, degree, bits int) *polynomial.Polynomial {
	coefs := make([]*big.Int, degree+1)
	for i := range coefs {
		coefs[i] = RandomInt(rng, bits)
	}
	return polynomial.New(coefs...)
}

// RandomAbscissae returns n distinct positive integers of at most bits bits.
func RandomAbscissae(rng *rand.Rand, n, bits int) []*big.Int {
	seen := make(map[string]bool, n)
	xs := make([]*big.Int, 0, n)
	for len(xs) < n {
		x := RandomInt(rng, bits)
		x.Add(x, big.NewInt(1))
		if seen[x.String()] {
			continue
		}
		seen[x.String()] = true
		xs = append(xs, x)
	}
	return xs
}

// Shares samples p at xs and encodes every ordinate in the matching base.
// bases is cycled when shorter than xs. Ordinates must be non-negative.
func Shares(p *polynomial.Polynomial, xs []*big.Int, bases ...int) (share.Set, error) {
	if len(bases) == 0 {
		bases = []int{10}
	}
	set := make(share.Set, len(xs))
	for i, pt := range p.Points(xs...) {
		base := bases[i%len(bases)]
		value, err := radix.Encode(pt.Y, base)
		if err != nil {
			return nil, err
		}
		set[i] = share.Share{X: pt.X, Base: base, Value: value}
	}
	return set, nil
}
