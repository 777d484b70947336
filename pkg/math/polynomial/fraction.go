package polynomial

import (
	"fmt"
	"math/big"
)

// Fraction is an exact rational number num/den with den > 0 and
// gcd(|num|, den) = 1. Fractions are values: every operation returns a new
// Fraction and never modifies its receiver or arguments.
type Fraction struct {
	num *big.Int
	den *big.Int
}

var (
	zeroFraction = Fraction{num: big.NewInt(0), den: big.NewInt(1)}
	oneFraction  = Fraction{num: big.NewInt(1), den: big.NewInt(1)}
)

// NewFraction returns num/den in lowest terms. It panics if den is zero.
func NewFraction(num, den *big.Int) Fraction {
	if den.Sign() == 0 {
		panic("polynomial: zero denominator")
	}
	return reduce(new(big.Int).Set(num), new(big.Int).Set(den))
}

// reduce takes ownership of num and den.
func reduce(num, den *big.Int) Fraction {
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, num, den)
	if g.Cmp(bigOne) > 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	return Fraction{num: num, den: den}
}

var bigOne = big.NewInt(1)

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int { return new(big.Int).Set(f.num) }

// Den returns a copy of the (positive) denominator.
func (f Fraction) Den() *big.Int { return new(big.Int).Set(f.den) }

// MulFrac returns f * (num/den).
func (f Fraction) MulFrac(num, den *big.Int) Fraction {
	return reduce(
		new(big.Int).Mul(f.num, num),
		new(big.Int).Mul(f.den, den),
	)
}

// Add returns f + g.
func (f Fraction) Add(g Fraction) Fraction {
	num := new(big.Int).Mul(f.num, g.den)
	num.Add(num, new(big.Int).Mul(g.num, f.den))
	return reduce(num, new(big.Int).Mul(f.den, g.den))
}

// Equal reports whether f and g denote the same rational.
func (f Fraction) Equal(g Fraction) bool {
	return f.num.Cmp(g.num) == 0 && f.den.Cmp(g.den) == 0
}

// Int returns f as an integer, or ErrInterpolationInconsistent if the
// division leaves a remainder.
func (f Fraction) Int() (*big.Int, error) {
	q, r := new(big.Int).QuoRem(f.num, f.den, new(big.Int))
	if r.Sign() != 0 {
		return nil, fmt.Errorf("%w: result %s is not an integer", ErrInterpolationInconsistent, f)
	}
	return q, nil
}

func (f Fraction) String() string {
	if f.den.Cmp(bigOne) == 0 {
		return f.num.String()
	}
	return f.num.String() + "/" + f.den.String()
}
