package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// flexInt is an integer that may be written either as a number or as a
// decimal string ("base": "16" and "base": 16 are both accepted).
type flexInt int

func (f *flexInt) set(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrMalformed, s)
	}
	*f = flexInt(v)
	return nil
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return f.set(s)
	}
	return f.set(string(data))
}

func (f *flexInt) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case int:
		*f = flexInt(t)
		return nil
	case string:
		return f.set(t)
	case nil:
		return nil
	}
	return fmt.Errorf("%w: unexpected %T for an integer field", ErrMalformed, v)
}

func (f *flexInt) UnmarshalCBOR(data []byte) error {
	var v interface{}
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case uint64:
		return f.set(strconv.FormatUint(t, 10))
	case int64:
		return f.set(strconv.FormatInt(t, 10))
	case string:
		return f.set(t)
	case nil:
		return nil
	}
	return fmt.Errorf("%w: unexpected %T for an integer field", ErrMalformed, v)
}
