// Package document reads and writes share documents of the form
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"},
//	  ...
//	}
//
// where every key other than "keys" is the decimal x-coordinate of a share.
// The same layout is accepted as JSON, YAML or CBOR.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/reconstruct/pkg/reconstruct"
	"github.com/luxfi/reconstruct/pkg/share"
	"gopkg.in/yaml.v2"
)

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"
)

// KeysEntry is the reserved key holding the scenario parameters.
const KeysEntry = "keys"

var (
	// ErrMalformed is returned for a document that does not follow the share
	// document layout.
	ErrMalformed = errors.New("document: malformed")

	// ErrUnknownFormat is returned for an unsupported encoding.
	ErrUnknownFormat = errors.New("document: unknown format")
)

// ParseFormat accepts a format name or a file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf picks the format from a file name's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// entry is the union of the "keys" object and a share object.
type entry struct {
	N     flexInt `json:"n,omitempty" yaml:"n,omitempty" cbor:"n,omitempty"`
	K     flexInt `json:"k,omitempty" yaml:"k,omitempty" cbor:"k,omitempty"`
	Field string  `json:"field,omitempty" yaml:"field,omitempty" cbor:"field,omitempty"`
	Base  flexInt `json:"base,omitempty" yaml:"base,omitempty" cbor:"base,omitempty"`
	Value string  `json:"value,omitempty" yaml:"value,omitempty" cbor:"value,omitempty"`
}

// Load reads the document at path. The scenario is named after the file.
func Load(path string) (reconstruct.Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return reconstruct.Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return reconstruct.Scenario{}, fmt.Errorf("document: failed to read %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return reconstruct.Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = filepath.Base(path)
	return s, nil
}

// Parse decodes a document. Shares are returned in ascending x order.
func Parse(data []byte, format Format) (reconstruct.Scenario, error) {
	raw := make(map[string]entry)
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, &raw)
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case CBOR:
		err = cbor.Unmarshal(data, &raw)
	default:
		return reconstruct.Scenario{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return reconstruct.Scenario{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	keys, ok := raw[KeysEntry]
	if !ok {
		return reconstruct.Scenario{}, fmt.Errorf("%w: missing %q entry", ErrMalformed, KeysEntry)
	}
	if keys.K < 1 {
		return reconstruct.Scenario{}, fmt.Errorf("%w: k must be at least 1, got %d", ErrMalformed, keys.K)
	}

	shares := make(share.Set, 0, len(raw)-1)
	seen := make(map[string]string, len(raw))
	for name, e := range raw {
		if name == KeysEntry {
			continue
		}
		x, ok := new(big.Int).SetString(name, 10)
		if !ok {
			return reconstruct.Scenario{}, fmt.Errorf("%w: share key %q is not a decimal integer", ErrMalformed, name)
		}
		if other, dup := seen[x.String()]; dup {
			a, b := other, name
			if b < a {
				a, b = b, a
			}
			return reconstruct.Scenario{}, fmt.Errorf("%w: share keys %q and %q are the same x", ErrMalformed, a, b)
		}
		seen[x.String()] = name
		if e.Base == 0 || e.Value == "" {
			return reconstruct.Scenario{}, fmt.Errorf("%w: share %s needs both base and value", ErrMalformed, name)
		}
		shares = append(shares, share.Share{X: x, Base: int(e.Base), Value: e.Value})
	}
	shares, err = shares.Sorted()
	if err != nil {
		return reconstruct.Scenario{}, err
	}

	return reconstruct.Scenario{
		N:      int(keys.N),
		K:      int(keys.K),
		Field:  keys.Field,
		Shares: shares,
	}, nil
}

type keysOut struct {
	N     int    `json:"n" yaml:"n" cbor:"n"`
	K     int    `json:"k" yaml:"k" cbor:"k"`
	Field string `json:"field,omitempty" yaml:"field,omitempty" cbor:"field,omitempty"`
}

type shareOut struct {
	Base  string `json:"base" yaml:"base" cbor:"base"`
	Value string `json:"value" yaml:"value" cbor:"value"`
}

// Encode writes a scenario in the given format. Bases are written as strings,
// as in the documents this package reads.
func Encode(s reconstruct.Scenario, format Format) ([]byte, error) {
	n := s.N
	if n == 0 {
		n = len(s.Shares)
	}
	out := map[string]interface{}{
		KeysEntry: keysOut{N: n, K: s.K, Field: s.Field},
	}
	for _, sh := range s.Shares {
		if sh.X == nil {
			return nil, share.ErrMissingAbscissa
		}
		out[sh.X.String()] = shareOut{Base: fmt.Sprint(sh.Base), Value: sh.Value}
	}

	switch format {
	case JSON:
		return json.MarshalIndent(out, "", "  ")
	case YAML:
		return yaml.Marshal(out)
	case CBOR:
		return cbor.Marshal(out)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
