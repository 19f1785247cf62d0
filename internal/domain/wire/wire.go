// Package wire holds decoding helpers shared by the response parsers.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNotObject is returned for a response body that is not a JSON object
var ErrNotObject = errors.New("response is not a JSON object")

// IsObject reports whether b holds a JSON object, ignoring surrounding space
func IsObject(b []byte) bool {
	trimmed := bytes.TrimSpace(b)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// DecodeObject unmarshals body into v, rejecting anything but a JSON object
func DecodeObject(body []byte, v any) error {
	if !IsObject(body) {
		return ErrNotObject
	}
	return json.Unmarshal(bytes.TrimSpace(body), v)
}
