package domain

import (
	"bytes"
	"encoding/json"
)

// Text accepts any JSON value. Strings are unquoted, null becomes "", and other
// values keep their compact JSON form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}
