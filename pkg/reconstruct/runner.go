package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one scenario. Exactly one of Secret and Err is set.
type Result struct {
	Name        string
	K           int
	N           int
	Field       string
	Secret      *big.Int
	Fingerprint []byte
	Elapsed     time.Duration
	Err         error
}

// Runner evaluates independent scenarios concurrently.
type Runner struct {
	// Workers bounds the number of scenarios evaluated at once. Zero or less
	// means no bound.
	Workers int
	// Field, when set, overrides every scenario's field.
	Field string
	// Log receives one event per scenario.
	Log zerolog.Logger
}

// Run evaluates every scenario and returns the results in input order. The
// returned error joins the failures of all scenarios; a failing scenario does
// not stop the others. Scenarios not yet started when ctx is cancelled fail
// with ctx's error.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, len(scenarios))

	var g errgroup.Group
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}
	for i := range scenarios {
		i := i // per-iteration copy (Go <1.22 loop semantics)
		g.Go(func() error {
			results[i] = r.run(ctx, scenarios[i])
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) run(ctx context.Context, s Scenario) Result {
	if r.Field != "" {
		s.Field = r.Field
	}
	res := Result{Name: s.Name, K: s.K, N: s.N, Field: s.Field}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log := r.Log.With().Str("scenario", s.Name).Int("k", s.K).Int("shares", len(s.Shares)).Logger()
	if s.N > 0 && s.N != len(s.Shares) {
		log.Warn().Int("n", s.N).Msg("share count does not match n")
	}

	start := time.Now()
	if res.Err = s.Validate(); res.Err == nil {
		res.Secret, res.Err = s.Recover()
	}
	res.Elapsed = time.Since(start)
	if res.Err != nil {
		res.Secret = nil
		log.Error().Err(res.Err).Msg("reconstruction failed")
		return res
	}

	selected, err := s.Shares.Select(s.K)
	if err == nil {
		res.Fingerprint, err = selected.Fingerprint()
	}
	if err != nil {
		log.Warn().Err(err).Msg("share fingerprint unavailable")
	}
	log.Debug().
		Hex("fingerprint", res.Fingerprint).
		Dur("elapsed", res.Elapsed).
		Str("field", s.Field).
		Msg("secret reconstructed")
	return res
}
