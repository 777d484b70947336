package main

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/luxfi/reconstruct/internal/test"
	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
)

type simulation struct {
	name string
	// round returns false for a round whose outcome is wrong.
	round func(rng *rand.Rand, maxK int) (bool, error)
}

var simulations = map[string]simulation{
	"exactness":  {"Exactness", simulateExactness},
	"order":      {"Order Invariance", simulateOrderInvariance},
	"roundtrip":  {"Base Round Trip", simulateRoundTrip},
	"duplicates": {"Duplicate Rejection", simulateDuplicates},
}

var simulationOrder = []string{"exactness", "order", "roundtrip", "duplicates"}

func runSimulation(cmd *cobra.Command, args []string) error {
	scenario, _ := cmd.Flags().GetString("scenario")
	rounds, _ := cmd.Flags().GetInt("rounds")
	seed, _ := cmd.Flags().GetInt64("seed")
	maxK, _ := cmd.Flags().GetInt("max-threshold")

	if rounds < 1 || maxK < 1 {
		return fmt.Errorf("rounds and max-threshold must be positive")
	}

	names := []string{scenario}
	if scenario == "all" {
		names = simulationOrder
	}

	rng := rand.New(rand.NewSource(seed))
	failures := 0
	for _, name := range names {
		sim, ok := simulations[name]
		if !ok {
			return fmt.Errorf("unknown scenario: %s", name)
		}
		failed, err := simulate(sim, rng, rounds, maxK)
		if err != nil {
			return fmt.Errorf("simulation error: %w", err)
		}
		failures += failed
	}

	if failures > 0 {
		return fmt.Errorf("%d simulation rounds failed", failures)
	}
	return nil
}

func simulate(sim simulation, rng *rand.Rand, rounds, maxK int) (int, error) {
	fmt.Printf("\n=== %s Simulation ===\n", sim.name)
	fmt.Printf("Rounds: %d\n", rounds)

	successCount := 0
	failureCount := 0

	for round := 0; round < rounds; round++ {
		if round%10 == 0 {
			fmt.Printf("\rProgress: %d/%d", round, rounds)
		}

		ok, err := sim.round(rng, maxK)
		if err != nil {
			return 0, err
		}
		if ok {
			successCount++
		} else {
			failureCount++
			logger.Debug().Str("simulation", sim.name).Int("round", round).Msg("round failed")
		}
	}

	fmt.Printf("\rProgress: %d/%d", rounds, rounds)
	fmt.Printf("\n\n=== Results ===\n")
	fmt.Printf("Successful rounds: %d (%.2f%%)\n", successCount, float64(successCount)/float64(rounds)*100)
	fmt.Printf("Failed rounds: %d (%.2f%%)\n", failureCount, float64(failureCount)/float64(rounds)*100)

	return failureCount, nil
}

func simulateExactness(rng *rand.Rand, maxK int) (bool, error) {
	k := rng.Intn(maxK) + 1
	bits := 64 + rng.Intn(448)
	p := test.PositivePolynomial(rng, k-1, bits)
	shares, err := test.Shares(p, test.RandomAbscissae(rng, k+rng.Intn(3), 32), randomBase(rng), randomBase(rng))
	if err != nil {
		return false, err
	}

	secret, err := reconstruct.Recover(k, shares)
	if err != nil {
		return false, nil
	}
	return secret.Cmp(p.Constant()) == 0, nil
}

func simulateOrderInvariance(rng *rand.Rand, maxK int) (bool, error) {
	k := rng.Intn(maxK) + 1
	p := test.RandomPolynomial(rng, k-1, 256)
	points := p.Points(test.RandomAbscissae(rng, k, 64)...)

	want, err := polynomial.ConstantTerm(points, k)
	if err != nil {
		return false, nil
	}
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
	got, err := polynomial.ConstantTerm(points, k)
	if err != nil {
		return false, nil
	}
	return got.Cmp(want) == 0, nil
}

func simulateRoundTrip(rng *rand.Rand, _ int) (bool, error) {
	n := test.RandomInt(rng, 1+rng.Intn(1024))
	base := randomBase(rng)

	encoded, err := radix.Encode(n, base)
	if err != nil {
		return false, err
	}
	decoded, err := radix.Decode(encoded, base)
	if err != nil {
		return false, nil
	}
	return decoded.Cmp(n) == 0, nil
}

func simulateDuplicates(rng *rand.Rand, maxK int) (bool, error) {
	k := rng.Intn(maxK) + 2
	p := test.RandomPolynomial(rng, k-1, 128)
	points := p.Points(test.RandomAbscissae(rng, k, 32)...)

	// repeat one abscissa with a different ordinate
	i, j := rng.Intn(k), rng.Intn(k-1)
	if j >= i {
		j++
	}
	points[j] = polynomial.Point{X: points[i].X, Y: new(big.Int).Add(points[i].Y, big.NewInt(1))}

	_, err := polynomial.ConstantTerm(points, k)
	return errors.Is(err, polynomial.ErrDuplicateAbscissa), nil
}

func randomBase(rng *rand.Rand) int {
	return radix.MinBase + rng.Intn(radix.MaxBase-radix.MinBase+1)
}
