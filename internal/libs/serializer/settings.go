package serializer

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/pkg/settings"
)

// MarshalSettings encodes s as a flat key to value map.
func MarshalSettings(ser ISerializer, s settings.Settings) ([]byte, error) {
	return ser.Marshal(s.AsMap())
}

// UnmarshalSettings decodes data into a settings layer. Nested documents are flattened into dotted keys.
func UnmarshalSettings(ser ISerializer, data []byte) (settings.Settings, error) {
	var raw map[string]any

	err := ser.Unmarshal(data, &raw)
	if err != nil {
		return settings.Settings{}, err
	}

	s, err := settings.FromMap(raw)
	if err != nil {
		return settings.Settings{}, ewrap.Wrap(err, "failed to decode settings")
	}

	return s, nil
}
