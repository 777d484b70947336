package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
	"github.com/luxfi/reconstruct/pkg/share"
)

type check struct {
	name string
	test func() error
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	suite, _ := cmd.Flags().GetString("suite")

	switch suite {
	case "functional":
		return runChecks("Functional", functionalChecks)
	case "edge":
		return runChecks("Edge Case", edgeCaseChecks)
	case "all":
		if err := runChecks("Functional", functionalChecks); err != nil {
			return err
		}
		return runChecks("Edge Case", edgeCaseChecks)
	default:
		return fmt.Errorf("unknown test suite: %s", suite)
	}
}

func runChecks(title string, checks []check) error {
	fmt.Printf("\n=== %s Checks ===\n", title)

	passed := 0
	failed := 0

	for _, c := range checks {
		fmt.Printf("\nRunning: %s\n", c.name)

		start := time.Now()
		err := c.test()
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("  ✗ FAILED: %v (%.2fs)\n", err, elapsed.Seconds())
			failed++
		} else {
			fmt.Printf("  ✓ PASSED (%.2fs)\n", elapsed.Seconds())
			passed++
		}
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Printf("Total:  %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}

func shareOf(x int64, base int, value string) share.Share {
	return share.Share{X: big.NewInt(x), Base: base, Value: value}
}

func expectSecret(k int, shares share.Set, want string) error {
	secret, err := reconstruct.Recover(k, shares)
	if err != nil {
		return err
	}
	if secret.String() != want {
		return fmt.Errorf("recovered %s, want %s", secret, want)
	}
	return nil
}

func expectError(target error, k int, shares share.Set) error {
	secret, err := reconstruct.Recover(k, shares)
	if !errors.Is(err, target) {
		return fmt.Errorf("got secret=%v err=%v, want %v", secret, err, target)
	}
	return nil
}

var functionalChecks = []check{
	{"Quadratic 3x² + 2x + 5", func() error {
		return expectSecret(3, share.Set{shareOf(1, 10, "10"), shareOf(2, 10, "21"), shareOf(3, 10, "38")}, "5")
	}},
	{"Mixed Bases", func() error {
		return expectSecret(3, share.Set{
			shareOf(1, 10, "4"), shareOf(2, 2, "111"), shareOf(3, 10, "12"), shareOf(6, 4, "213"),
		}, "3")
	}},
	{"Numeric Share Order", func() error {
		// 2x + 7; the share at x = 10 is wrong and must not be selected
		return expectSecret(2, share.Set{shareOf(10, 10, "0"), shareOf(9, 10, "25"), shareOf(2, 10, "11")}, "7")
	}},
	{"Large Base-36 Values", func() error {
		c, _ := new(big.Int).SetString(strings.Repeat("z", 30), 36)
		p := polynomial.New(c, big.NewInt(1), c)
		shares := make(share.Set, 0, 3)
		for _, pt := range p.Points(big.NewInt(1), big.NewInt(2), big.NewInt(3)) {
			v, err := radix.Encode(pt.Y, 36)
			if err != nil {
				return err
			}
			shares = append(shares, share.Share{X: pt.X, Base: 36, Value: strings.ToUpper(v)})
		}
		return expectSecret(3, shares, c.String())
	}},
}

var edgeCaseChecks = []check{
	{"Single Share", func() error {
		return expectSecret(1, share.Set{shareOf(17, 16, "ff")}, "255")
	}},
	{"Duplicate Abscissa", func() error {
		return expectError(polynomial.ErrDuplicateAbscissa, 2, share.Set{shareOf(1, 10, "4"), shareOf(1, 10, "7")})
	}},
	{"Insufficient Shares", func() error {
		return expectError(polynomial.ErrInsufficientPoints, 3, share.Set{shareOf(1, 10, "4"), shareOf(2, 10, "7")})
	}},
	{"Invalid Hex Digit", func() error {
		return expectError(radix.ErrInvalidDigit, 1, share.Set{shareOf(1, 16, "1G")})
	}},
	{"Invalid Binary Digit", func() error {
		return expectError(radix.ErrInvalidDigit, 1, share.Set{shareOf(1, 2, "7")})
	}},
	{"Invalid Base", func() error {
		return expectError(radix.ErrInvalidBase, 1, share.Set{shareOf(1, 37, "1")})
	}},
	{"Inconsistent Shares", func() error {
		return expectError(polynomial.ErrInterpolationInconsistent, 3,
			share.Set{shareOf(1, 10, "1"), shareOf(2, 10, "2"), shareOf(4, 10, "2")})
	}},
}
