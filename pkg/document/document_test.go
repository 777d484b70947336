package document_test

import (
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/reconstruct/internal/test"
	"github.com/luxfi/reconstruct/pkg/document"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
	"github.com/luxfi/reconstruct/pkg/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestcase(t *testing.T) {
	for _, name := range []string{"testcase1.json", "testcase1.yaml"} {
		t.Run(name, func(t *testing.T) {
			s, err := document.Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Equal(t, 4, s.N)
			assert.Equal(t, 3, s.K)
			require.Len(t, s.Shares, 4)
			assert.Equal(t, "6", s.Shares[3].X.String())
			assert.Equal(t, 4, s.Shares[3].Base)

			secret, err := s.Recover()
			require.NoError(t, err)
			assert.Equal(t, "3", secret.String())
		})
	}
}

func TestLoadTestcaseMixedBases(t *testing.T) {
	s, err := document.Load(filepath.Join("testdata", "testcase2.json"))
	require.NoError(t, err)
	assert.Equal(t, 8, s.N)
	assert.Equal(t, 5, s.K)
	require.Len(t, s.Shares, 8)
	assert.Equal(t, "12", s.Shares[7].X.String())

	secret, err := s.Recover()
	require.NoError(t, err)
	assert.Equal(t, "79836264049851", secret.String())
}

func TestParseNumericBaseAndOrder(t *testing.T) {
	data := []byte(`{
		"keys": {"n": "3", "k": 2},
		"10": {"base": 10, "value": "31"},
		"9": {"base": "10", "value": "28"},
		"2": {"base": "16", "value": "7"}
	}`)
	s, err := document.Parse(data, document.JSON)
	require.NoError(t, err)
	require.Len(t, s.Shares, 3)
	assert.Equal(t, []string{"2", "9", "10"}, []string{
		s.Shares[0].X.String(), s.Shares[1].X.String(), s.Shares[2].X.String(),
	})

	// 3x + 1 through x = 2 and x = 9
	secret, err := s.Recover()
	require.NoError(t, err)
	assert.Equal(t, "1", secret.String())
}

func TestParseSameAbscissaTwice(t *testing.T) {
	data := []byte(`{
		"keys": {"n": 3, "k": 2},
		"1": {"base": "10", "value": "7"},
		"2": {"base": "10", "value": "9"},
		"02": {"base": "10", "value": "100"}
	}`)
	for i := 0; i < 50; i++ {
		_, err := document.Parse(data, document.JSON)
		require.ErrorIs(t, err, document.ErrMalformed)
		assert.Contains(t, err.Error(), `"02" and "2"`)
	}
}

func TestParseMalformed(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing keys", `{"1": {"base": "10", "value": "4"}}`},
		{"zero k", `{"keys": {"n": 1, "k": 0}, "1": {"base": "10", "value": "4"}}`},
		{"non-numeric share key", `{"keys": {"k": 1}, "one": {"base": "10", "value": "4"}}`},
		{"non-numeric base", `{"keys": {"k": 1}, "1": {"base": "ten", "value": "4"}}`},
		{"missing value", `{"keys": {"k": 1}, "1": {"base": "10"}}`},
		{"missing base", `{"keys": {"k": 1}, "1": {"value": "4"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := document.Parse([]byte(tc.data), document.JSON)
			assert.ErrorIs(t, err, document.ErrMalformed)
		})
	}
}

func TestFormats(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := test.PositivePolynomial(rng, 5, 200)
	shares, err := test.Shares(p, test.RandomAbscissae(rng, 8, 20), 36, 2, 10, 16)
	require.NoError(t, err)
	in := reconstruct.Scenario{K: 6, Field: "rational", Shares: shares}

	for _, format := range []document.Format{document.JSON, document.YAML, document.CBOR} {
		t.Run(string(format), func(t *testing.T) {
			data, err := document.Encode(in, format)
			require.NoError(t, err)

			out, err := document.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, 8, out.N)
			assert.Equal(t, 6, out.K)
			assert.Equal(t, "rational", out.Field)

			secret, err := out.Recover()
			require.NoError(t, err)
			assert.Equal(t, 0, secret.Cmp(p.Constant()))
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	in := reconstruct.Scenario{
		K: 1,
		Shares: share.Set{
			{X: big.NewInt(5), Base: 36, Value: "zz"},
		},
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "single.cbor")
	data, err := document.Encode(in, document.CBOR)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := document.Load(path)
	require.NoError(t, err)
	secret, err := s.Recover()
	require.NoError(t, err)
	assert.Equal(t, "1295", secret.String())

	_, err = document.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = document.Load(filepath.Join(dir, "shares.txt"))
	assert.ErrorIs(t, err, document.ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]document.Format{
		"json": document.JSON, ".JSON": document.JSON,
		"yml": document.YAML, ".yaml": document.YAML,
		"cbor": document.CBOR,
	} {
		got, err := document.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := document.ParseFormat("toml")
	assert.ErrorIs(t, err, document.ErrUnknownFormat)
}
