package reconstruct_test

import (
	"math/big"
	"math/rand"
	"strings"

	"github.com/cronokirby/saferith"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/reconstruct/internal/test"
	"github.com/luxfi/reconstruct/pkg/math/field"
	"github.com/luxfi/reconstruct/pkg/math/polynomial"
	"github.com/luxfi/reconstruct/pkg/math/radix"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
	"github.com/luxfi/reconstruct/pkg/share"
)

func sh(x int64, base int, value string) share.Share {
	return share.Share{X: big.NewInt(x), Base: base, Value: value}
}

var _ = Describe("Recover", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	Describe("Functional", func() {
		It("recovers the constant term of 3x² + 2x + 5", func() {
			shares := share.Set{sh(1, 10, "10"), sh(2, 10, "21"), sh(3, 10, "38")}
			secret, err := reconstruct.Recover(3, shares)
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.String()).To(Equal("5"))
		})

		It("decodes mixed bases before interpolating", func() {
			// x² + 3 sampled at 1, 2, 3, 6
			shares := share.Set{sh(6, 4, "213"), sh(3, 10, "12"), sh(2, 2, "111"), sh(1, 10, "4")}
			secret, err := reconstruct.Recover(3, shares)
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.String()).To(Equal("3"))
		})

		It("uses the k shares with the smallest x", func() {
			p := polynomial.New(test.Ints(9, 4, 1)...)
			shares, err := test.Shares(p, test.Ints(12, 1, 10, 2, 3))
			Expect(err).NotTo(HaveOccurred())
			// corrupt the two largest abscissae; they must not be consumed
			shares[0].Value = "1"
			shares[2].Value = "1"

			secret, err := reconstruct.Recover(3, shares)
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.String()).To(Equal("9"))
		})

		It("returns the single share's value when k is 1", func() {
			secret, err := reconstruct.Recover(1, share.Set{sh(42, 16, "ff")})
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.String()).To(Equal("255"))
		})

		It("handles base-36 values beyond 128 bits", func() {
			p := test.PositivePolynomial(rng, 4, 160)
			shares, err := test.Shares(p, test.Abscissae(5), 36, 16, 7, 36, 2)
			Expect(err).NotTo(HaveOccurred())

			y, err := radix.Decode(shares[0].Value, 36)
			Expect(err).NotTo(HaveOccurred())
			Expect(y.BitLen()).To(BeNumerically(">", 128))

			secret, err := reconstruct.Recover(5, shares)
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.Cmp(p.Constant())).To(Equal(0))
		})

		It("is exact for hundreds of bits and any order", func() {
			for k := 1; k <= 10; k++ {
				p := test.PositivePolynomial(rng, k-1, 384)
				shares, err := test.Shares(p, test.RandomAbscissae(rng, k, 256), 10, 36, 16)
				Expect(err).NotTo(HaveOccurred())
				rng.Shuffle(len(shares), func(i, j int) { shares[i], shares[j] = shares[j], shares[i] })

				secret, err := reconstruct.Recover(k, shares)
				Expect(err).NotTo(HaveOccurred())
				Expect(secret.Cmp(p.Constant())).To(Equal(0), "k=%d", k)
			}
		})
	})

	Describe("Edge Cases", func() {
		It("rejects duplicate abscissae", func() {
			shares := share.Set{sh(1, 10, "4"), sh(1, 10, "7"), sh(3, 10, "12")}
			_, err := reconstruct.Recover(3, shares)
			Expect(err).To(MatchError(polynomial.ErrDuplicateAbscissa))
		})

		It("rejects a duplicate just past the first k shares", func() {
			shares := share.Set{sh(1, 10, "7"), sh(2, 10, "9"), sh(2, 10, "100")}
			secret, err := reconstruct.Recover(2, shares)
			Expect(err).To(MatchError(polynomial.ErrDuplicateAbscissa))
			Expect(secret).To(BeNil())
		})

		It("rejects too few shares", func() {
			_, err := reconstruct.Recover(3, share.Set{sh(1, 10, "4"), sh(2, 10, "7")})
			Expect(err).To(MatchError(polynomial.ErrInsufficientPoints))
		})

		It("rejects digits outside the base", func() {
			_, err := reconstruct.Recover(2, share.Set{sh(1, 16, "1G"), sh(2, 10, "7")})
			Expect(err).To(MatchError(radix.ErrInvalidDigit))

			_, err = reconstruct.Recover(1, share.Set{sh(1, 2, "7")})
			Expect(err).To(MatchError(radix.ErrInvalidDigit))
		})

		It("rejects shares that do not lie on an integer polynomial", func() {
			_, err := reconstruct.Recover(3, share.Set{sh(1, 10, "1"), sh(2, 10, "2"), sh(4, 10, "2")})
			Expect(err).To(MatchError(polynomial.ErrInterpolationInconsistent))
		})

		It("never reports a value on failure", func() {
			secret, err := reconstruct.Recover(0, share.Set{sh(1, 10, "4")})
			Expect(err).To(MatchError(polynomial.ErrInvalidThreshold))
			Expect(secret).To(BeNil())
		})
	})

	Describe("Prime field", func() {
		It("matches rational reconstruction reduced modulo p", func() {
			p := test.PositivePolynomial(rng, 3, 300)
			shares, err := test.Shares(p, test.Abscissae(4), 16)
			Expect(err).NotTo(HaveOccurred())

			modulus, err := field.Parse("secp256k1")
			Expect(err).NotTo(HaveOccurred())

			reduced := make(share.Set, len(shares))
			for i, s := range shares {
				y, err := radix.Decode(s.Value, s.Base)
				Expect(err).NotTo(HaveOccurred())
				y.Mod(y, modulus.Big())
				reduced[i] = share.Share{X: s.X, Base: 16, Value: y.Text(16)}
			}

			got, err := reconstruct.RecoverMod(4, reduced, modulus)
			Expect(err).NotTo(HaveOccurred())
			want := new(big.Int).Mod(p.Constant(), modulus.Big())
			Expect(got.Cmp(want)).To(Equal(0))
		})

		It("selects the field from the scenario", func() {
			s := reconstruct.Scenario{
				Name:   "mod-101",
				K:      2,
				Field:  "101",
				Shares: share.Set{sh(1, 10, "50"), sh(2, 10, "100")},
			}
			// 50 + 50x over GF(101): constant 0
			secret, err := s.Recover()
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.Sign()).To(Equal(0))
		})

		It("rejects a nil modulus", func() {
			var p *saferith.Modulus
			_, err := reconstruct.RecoverMod(1, share.Set{sh(1, 10, "1")}, p)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Scenario validation", func() {
		It("reports bad parameters before decoding", func() {
			Expect(reconstruct.Scenario{K: 0}.Validate()).To(MatchError(polynomial.ErrInvalidThreshold))
			Expect(reconstruct.Scenario{K: 2, Shares: share.Set{sh(1, 10, "1")}}.Validate()).
				To(MatchError(polynomial.ErrInsufficientPoints))
			Expect(reconstruct.Scenario{K: 1, Field: "nope", Shares: share.Set{sh(1, 10, "1")}}.Validate()).
				To(MatchError(field.ErrUnknownField))
			Expect(reconstruct.Scenario{K: 1, Shares: share.Set{sh(1, 36, strings.Repeat("z", 3))}}.Validate()).
				To(Succeed())
		})
	})
})
