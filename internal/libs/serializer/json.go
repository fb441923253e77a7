// Package serializer provides serialization interfaces and implementations for converting
// Go values to and from byte slices. It backs the topogen output formats and the settings
// file loader.
//
// The default serializer is JSON, backed by goccy/go-json.
package serializer

import (
	"github.com/goccy/go-json"

	"github.com/hyp3rd/ewrap"
)

// DefaultJSONSerializer leverages goccy/go-json to serialize values.
type DefaultJSONSerializer struct {
	// Indent pretty-prints the output with two spaces when set.
	Indent bool
}

// Marshal serializes the given value into a byte slice.
func (s *DefaultJSONSerializer) Marshal(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if s.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return nil, ewrap.Wrap(err, "failed to marshal json")
	}

	return data, nil
}

// Unmarshal deserializes the given byte slice into the given value.
func (*DefaultJSONSerializer) Unmarshal(data []byte, v any) error { // receiver omitted (unused)
	err := json.Unmarshal(data, v)
	if err != nil {
		return ewrap.Wrap(err, "failed to unmarshal json")
	}

	return nil
}
