package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxfi/reconstruct/internal/test"
	"github.com/luxfi/reconstruct/pkg/math/polynomial"
)

func runBenchmark(cmd *cobra.Command, args []string) error {
	iterations, _ := cmd.Flags().GetInt("iterations")
	thresholds, _ := cmd.Flags().GetIntSlice("thresholds")
	sizes, _ := cmd.Flags().GetIntSlice("bits")

	if iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", iterations)
	}

	fmt.Printf("Running interpolation benchmarks...\n")
	fmt.Printf("Iterations: %d\n", iterations)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, bits := range sizes {
		for _, k := range thresholds {
			if err := benchmarkConstantTerm(rng, k, bits, iterations); err != nil {
				return err
			}
		}
	}
	return nil
}

func benchmarkConstantTerm(rng *rand.Rand, k, bits, iterations int) error {
	if k < 1 || bits < 1 {
		return fmt.Errorf("invalid benchmark case: k=%d bits=%d", k, bits)
	}
	fmt.Printf("\nTesting k=%d, %d-bit coefficients:\n", k, bits)

	p := test.RandomPolynomial(rng, k-1, bits)
	points := p.Points(test.Abscissae(k)...)

	var totalTime time.Duration
	var minTime = time.Hour
	var maxTime time.Duration

	for i := 0; i < iterations; i++ {
		start := time.Now()

		secret, err := polynomial.ConstantTerm(points, k)
		if err != nil {
			return fmt.Errorf("interpolation failed: %w", err)
		}

		elapsed := time.Since(start)
		totalTime += elapsed

		if secret.Cmp(p.Constant()) != 0 {
			return fmt.Errorf("k=%d bits=%d: recovered %s, want %s", k, bits, secret, p.Constant())
		}
		if elapsed < minTime {
			minTime = elapsed
		}
		if elapsed > maxTime {
			maxTime = elapsed
		}
	}

	avgTime := totalTime / time.Duration(iterations)

	fmt.Printf("  Average: %v\n", avgTime)
	fmt.Printf("  Min:     %v\n", minTime)
	fmt.Printf("  Max:     %v\n", maxTime)
	fmt.Printf("  Total:   %v\n", totalTime)

	return nil
}
