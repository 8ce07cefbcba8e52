package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a request field stored as a string but accepted from any JSON
// scalar. Numbers keep their shortest decimal form, true becomes "true".
// Zero, false and null decode to "" so they count as absent.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case bool:
		*t = ""
		if x {
			*t = "true"
		}
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return fmt.Errorf("number %s out of range: %w", x, err)
		}
		*t = ""
		if f != 0 {
			*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
		}
	default:
		return fmt.Errorf("expected a string or number, got %T", v)
	}
	return nil
}

func (t Text) String() string { return string(t) }
