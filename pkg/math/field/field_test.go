package field_test

import (
	"testing"

	"github.com/luxfi/reconstruct/pkg/math/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		order string
	}{
		{"secp256k1", "secp256k1", "115792089237316195423570985008687907852837564279074904382605163141518161494337"},
		{"p256 upper case", "P256", "115792089210356248762697446949407573529996955224135760342422259061068512044369"},
		{"mersenne127", "mersenne127", "170141183460469231731687303715884105727"},
		{"decimal", "2147483647", "2147483647"},
		{"hex", "0x7fffffff", "2147483647"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := field.Parse(tc.input)
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.Equal(t, tc.order, m.Big().String())
		})
	}
}

func TestParseRational(t *testing.T) {
	for _, name := range []string{"", "rational", " Rational "} {
		m, err := field.Parse(name)
		require.NoError(t, err)
		assert.Nil(t, m)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := field.Parse("curve25519x")
	assert.ErrorIs(t, err, field.ErrUnknownField)

	for _, bad := range []string{"2", "15", "0", "-7"} {
		_, err = field.Parse(bad)
		assert.ErrorIs(t, err, field.ErrNotPrime, bad)
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"mersenne127", "p256", "secp256k1"}, field.Names())
}
