package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt is returned when stored text cannot be deserialized into a record.
var ErrCorrupt = errors.New("corrupt session record")

// Encode serializes the record to its JSON wire form.
func Encode(r *Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode session record: %w", err)
	}
	return string(data), nil
}

// Decode parses stored text into a record. Any malformed input, including
// valid JSON missing the loginTime field, yields an error wrapping [ErrCorrupt].
func Decode(raw string) (*Record, error) {
	var wire struct {
		Username  string `json:"username"`
		LoginTime *int64 `json:"loginTime"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if wire.LoginTime == nil {
		return nil, fmt.Errorf("%w: missing loginTime", ErrCorrupt)
	}

	return &Record{
		Username:  wire.Username,
		LoginTime: *wire.LoginTime,
	}, nil
}
