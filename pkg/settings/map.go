package settings

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

// AsMap returns a flat map of key to string or []string, suitable for encoders.
func (s Settings) AsMap() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		if v.isList {
			out[k] = slices.Clone(v.list)
		} else {
			out[k] = v.scalar
		}
	}

	return out
}

// FromMap builds a layer from decoded data. Nested maps are flattened into dotted keys,
// scalars are formatted as strings and sequences become list values.
func FromMap(m map[string]any) (Settings, error) {
	b := NewBuilder()

	err := flatten(b, "", m)
	if err != nil {
		return Settings{}, err
	}

	return b.Build(), nil
}

func flatten(b *Builder, prefix string, m map[string]any) error {
	for k, raw := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		err := flattenValue(b, key, raw)
		if err != nil {
			return err
		}
	}

	return nil
}

func flattenValue(b *Builder, key string, raw any) error {
	switch v := raw.(type) {
	case map[string]any:
		return flatten(b, key, v)
	case map[any]any:
		conv := make(map[string]any, len(v))
		for mk, mv := range v {
			conv[fmt.Sprint(mk)] = mv
		}

		return flatten(b, key, conv)
	case []string:
		b.PutList(key, v...)
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return ewrap.Wrapf(err, "%s[%d]", key, i)
			}

			items = append(items, s)
		}

		b.PutList(key, items...)
	default:
		s, err := scalarString(v)
		if err != nil {
			return ewrap.Wrap(err, key)
		}

		b.Put(key, s)
	}

	return nil
}

//nolint:cyclop
func scalarString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return formatFloat(float64(v)), nil
	case float64:
		return formatFloat(v), nil
	default:
		return "", ewrap.Wrapf(sentinel.ErrInvalidSettingValue, "unsupported type %T", raw)
	}
}

// formatFloat renders integral floats without a fraction; JSON decoders hand numbers back as float64.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}
