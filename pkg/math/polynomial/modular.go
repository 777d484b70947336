package polynomial

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ConstantTermMod is ConstantTerm over the prime field GF(p). It is meant for
// shares produced by a dealer working modulo p, whose ordinates are reduced
// and so do not lie on an integer polynomial. p must be an odd prime.
//
// Coordinates are reduced modulo p first; two abscissae that are congruent
// modulo p are reported as ErrDuplicateAbscissa.
func ConstantTermMod(points []Point, k int, p *saferith.Modulus) (*saferith.Nat, error) {
	if p == nil {
		return nil, errors.New("polynomial: nil modulus")
	}
	if p.Big().Bit(0) == 0 {
		return nil, errors.New("polynomial: modulus must be odd")
	}
	if err := checkPoints(points, k); err != nil {
		return nil, err
	}
	points = points[:k]

	xs := make([]*saferith.Nat, k)
	ys := make([]*saferith.Nat, k)
	for i, pt := range points {
		xs[i] = natMod(pt.X, p)
		ys[i] = natMod(pt.Y, p)
		for j := 0; j < i; j++ {
			if xs[i].Eq(xs[j]) == 1 {
				return nil, fmt.Errorf("%w: x = %s and x = %s are congruent modulo %s",
					ErrDuplicateAbscissa, points[j].X, pt.X, p.Big())
			}
		}
	}

	acc := new(saferith.Nat).SetUint64(0)
	for i := range xs {
		num := ys[i].Clone()
		den := new(saferith.Nat).SetUint64(1)
		for j := range xs {
			if i == j {
				continue
			}
			num.ModMul(num, new(saferith.Nat).ModNeg(xs[j], p), p)
			den.ModMul(den, new(saferith.Nat).ModSub(xs[i], xs[j], p), p)
		}
		term := new(saferith.Nat).ModInverse(den, p)
		term.ModMul(term, num, p)
		acc.ModAdd(acc, term, p)
	}
	return acc, nil
}

// natMod returns x mod p as a non-negative Nat sized for p.
func natMod(x *big.Int, p *saferith.Modulus) *saferith.Nat {
	r := new(big.Int).Mod(x, p.Big())
	return new(saferith.Nat).SetBig(r, p.BitLen())
}
