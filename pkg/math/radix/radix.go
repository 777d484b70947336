// Package radix converts unsigned digit strings in bases 2 through 36 to and
// from arbitrary-precision integers.
package radix

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// MinBase is the smallest supported radix.
	MinBase = 2
	// MaxBase is the largest supported radix (digits 0-9 then a-z).
	MaxBase = 36
)

var (
	// ErrInvalidBase is returned when a base lies outside [MinBase, MaxBase].
	ErrInvalidBase = errors.New("radix: invalid base")

	// ErrInvalidDigit is returned when a value contains a character that is not
	// a digit of the declared base.
	ErrInvalidDigit = errors.New("radix: invalid digit")
)

// digitValue returns the numeric value of c, or -1 if c is not an
// alphanumeric digit. Letters are case-insensitive.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// ValidBase reports whether base is a supported radix.
func ValidBase(base int) bool {
	return base >= MinBase && base <= MaxBase
}

// Decode interprets raw as an unsigned integer literal in the given base,
// most significant digit first, and returns its exact value.
//
// Signs, prefixes, separators and whitespace are all rejected with
// ErrInvalidDigit, as is the empty string.
func Decode(raw string, base int) (*big.Int, error) {
	if !ValidBase(base) {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidBase, base, MinBase, MaxBase)
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidDigit)
	}
	for i := 0; i < len(raw); i++ {
		d := digitValue(raw[i])
		if d < 0 || d >= base {
			return nil, fmt.Errorf("%w: %q at position %d in base %d", ErrInvalidDigit, raw[i], i, base)
		}
	}

	// every character was checked above, so SetString cannot see a sign or
	// an underscore and only fails on conditions we have already ruled out.
	n, ok := new(big.Int).SetString(raw, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q in base %d", ErrInvalidDigit, raw, base)
	}
	return n, nil
}

// Encode is the inverse of Decode. It writes n in the given base using the
// lower-case alphabet. n must be non-negative.
func Encode(n *big.Int, base int) (string, error) {
	if !ValidBase(base) {
		return "", fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidBase, base, MinBase, MaxBase)
	}
	if n == nil || n.Sign() < 0 {
		return "", errors.New("radix: cannot encode a negative or nil value")
	}
	return n.Text(base), nil
}
