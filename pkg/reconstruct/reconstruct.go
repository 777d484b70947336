// Package reconstruct recovers a shared secret from k of its shares.
//
// Recover is the exact-rational path: the shares are taken in ascending x
// order, the first k are decoded and the constant term of the interpolating
// polynomial is returned. RecoverMod does the same over a prime field.
package reconstruct

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/reconstruct/pkg/math/field"
	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/share"
)

// Recover returns the secret shared by shares under threshold k.
func Recover(k int, shares share.Set) (*big.Int, error) {
	points, err := selectPoints(k, shares)
	if err != nil {
		return nil, err
	}
	return polynomial.ConstantTerm(points, k)
}

// RecoverMod is Recover for shares whose values were reduced modulo the prime
// p. The result lies in [0, p).
func RecoverMod(k int, shares share.Set, p *saferith.Modulus) (*big.Int, error) {
	if p == nil {
		return nil, errors.New("reconstruct: nil modulus")
	}
	points, err := selectPoints(k, shares)
	if err != nil {
		return nil, err
	}
	secret, err := polynomial.ConstantTermMod(points, k, p)
	if err != nil {
		return nil, err
	}
	return secret.Big(), nil
}

func selectPoints(k int, shares share.Set) ([]polynomial.Point, error) {
	selected, err := shares.Select(k)
	if err != nil {
		return nil, err
	}
	return selected.Decode()
}

// Scenario is one independent reconstruction request.
type Scenario struct {
	// Name identifies the scenario in logs and reports.
	Name string
	// N is the number of shares the dealer issued; zero when unknown.
	N int
	// K is the reconstruction threshold.
	K int
	// Field selects prime-field reconstruction, see field.Parse. Empty means
	// exact rational reconstruction.
	Field string
	// Shares may hold more than K shares; the K with the smallest x are used.
	Shares share.Set
}

// Recover reconstructs the scenario's secret in its configured field.
func (s Scenario) Recover() (*big.Int, error) {
	p, err := field.Parse(s.Field)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return Recover(s.K, s.Shares)
	}
	return RecoverMod(s.K, s.Shares, p)
}

// Validate checks the scenario parameters without decoding any share.
func (s Scenario) Validate() error {
	if s.K < 1 {
		return fmt.Errorf("%w: got %d", polynomial.ErrInvalidThreshold, s.K)
	}
	if len(s.Shares) < s.K {
		return fmt.Errorf("%w: need %d shares, got %d", polynomial.ErrInsufficientPoints, s.K, len(s.Shares))
	}
	if _, err := field.Parse(s.Field); err != nil {
		return err
	}
	return nil
}
