// Package field resolves the prime moduli used for finite-field share
// reconstruction.
package field

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Rational names exact rational reconstruction, which uses no modulus.
const Rational = "rational"

var (
	// ErrUnknownField is returned for a name that is neither a known field
	// nor a numeric literal.
	ErrUnknownField = errors.New("field: unknown field")

	// ErrNotPrime is returned for a numeric modulus that is not an odd prime.
	ErrNotPrime = errors.New("field: modulus is not an odd prime")
)

var named = map[string]func() *big.Int{
	"secp256k1": func() *big.Int { return secp256k1.S256().N },
	"p256":      func() *big.Int { return elliptic.P256().Params().N },
	"mersenne127": func() *big.Int {
		m := new(big.Int).Lsh(big.NewInt(1), 127)
		return m.Sub(m, big.NewInt(1))
	},
}

// Names lists the named fields accepted by Parse.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse resolves a field name. The empty string and "rational" return a nil
// modulus, meaning exact rational reconstruction. Otherwise name is a known
// field (see Names) or a decimal or 0x-prefixed hexadecimal prime.
func Parse(name string) (*saferith.Modulus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Rational {
		return nil, nil
	}
	if order, ok := named[name]; ok {
		return modulus(order()), nil
	}

	p, ok := new(big.Int).SetString(name, 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if p.Sign() <= 0 || p.Bit(0) == 0 || !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: %s", ErrNotPrime, p)
	}
	return modulus(p), nil
}

func modulus(p *big.Int) *saferith.Modulus {
	return saferith.ModulusFromNat(new(saferith.Nat).SetBig(p, p.BitLen()))
}
