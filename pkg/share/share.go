// Package share models the (x, base, value) records handed to the
// reconstruction core and turns them into interpolation points.
package share

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/zeebo/blake3"
)

// ErrMissingAbscissa is returned for a share without an x-coordinate.
var ErrMissingAbscissa = errors.New("share: missing x-coordinate")

// Share is one encoded sample of the secret polynomial.
type Share struct {
	// X is the abscissa, conventionally a positive integer.
	X *big.Int
	// Base is the radix Value is written in, 2 through 36.
	Base int
	// Value is the unsigned ordinate written in Base.
	Value string
}

// Decoded is a share whose value has been converted to an integer.
type Decoded = polynomial.Point

// Decode converts the share's value to an integer.
func (s Share) Decode() (Decoded, error) {
	if s.X == nil {
		return Decoded{}, ErrMissingAbscissa
	}
	y, err := radix.Decode(s.Value, s.Base)
	if err != nil {
		return Decoded{}, fmt.Errorf("share x=%s: %w", s.X, err)
	}
	return Decoded{X: new(big.Int).Set(s.X), Y: y}, nil
}

// Set is an unordered collection of shares.
type Set []Share

// Sorted returns a copy of the set ordered by ascending numeric x. Two shares
// with the same x are rejected with polynomial.ErrDuplicateAbscissa, wherever
// they fall in the order.
func (s Set) Sorted() (Set, error) {
	for _, sh := range s {
		if sh.X == nil {
			return nil, ErrMissingAbscissa
		}
	}
	out := make(Set, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].X.Cmp(out[j].X) < 0
	})
	for i := 1; i < len(out); i++ {
		if out[i-1].X.Cmp(out[i].X) == 0 {
			return nil, fmt.Errorf("%w: two shares at x = %s", polynomial.ErrDuplicateAbscissa, out[i].X)
		}
	}
	return out, nil
}

// Select returns the k shares with the smallest x-coordinates, in ascending
// order. This is the deterministic choice of "the first k shares" when more
// than k are available; the whole set must have distinct x-coordinates.
func (s Set) Select(k int) (Set, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", polynomial.ErrInvalidThreshold, k)
	}
	if len(s) < k {
		return nil, fmt.Errorf("%w: need %d shares, got %d", polynomial.ErrInsufficientPoints, k, len(s))
	}
	sorted, err := s.Sorted()
	if err != nil {
		return nil, err
	}
	return sorted[:k], nil
}

// Decode converts every share into an interpolation point, preserving order.
func (s Set) Decode() ([]polynomial.Point, error) {
	points := make([]polynomial.Point, len(s))
	for i, sh := range s {
		p, err := sh.Decode()
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

const fingerprintContext = "luxfi/reconstruct 2026 share set fingerprint"

type fingerprintEntry struct {
	_     struct{} `cbor:",toarray"`
	X     string
	Base  int
	Value string
}

var fingerprintEncoding cbor.EncMode

func init() {
	var err error
	fingerprintEncoding, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("share: failed to build CBOR encoder: %w", err))
	}
}

// Fingerprint returns a BLAKE3 digest of the canonical CBOR encoding of the
// set in ascending x order. Digit case does not affect the result. It is
// meant for correlating runs in logs without printing share values.
func (s Set) Fingerprint() ([]byte, error) {
	sorted, err := s.Sorted()
	if err != nil {
		return nil, err
	}
	entries := make([]fingerprintEntry, len(sorted))
	for i, sh := range sorted {
		entries[i] = fingerprintEntry{
			X:     sh.X.String(),
			Base:  sh.Base,
			Value: strings.ToLower(sh.Value),
		}
	}
	data, err := fingerprintEncoding.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("share: failed to encode set: %w", err)
	}

	h := blake3.NewDeriveKey(fingerprintContext)
	_, _ = h.Write(data)
	return h.Sum(nil), nil
}
