// Package settings implements immutable key/value configuration layers with
// override-by-merge semantics. A Settings value is never mutated after it is
// built: Merge and Builder.Build always return a fresh value.
package settings

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

// value is either a scalar or an ordered list of strings.
type value struct {
	scalar string
	list   []string
	isList bool
}

func (v value) equal(o value) bool {
	if v.isList != o.isList {
		return false
	}

	if v.isList {
		return slices.Equal(v.list, o.list)
	}

	return v.scalar == o.scalar
}

// Settings is an immutable set of configuration keys. The zero value is an empty layer.
type Settings struct {
	values map[string]value
}

// Empty returns a layer with no keys.
func Empty() Settings { return Settings{} }

// Merge returns a new layer holding every key of base, with every key present in
// overrides shadowing the base value. Neither argument is modified.
func Merge(base, overrides Settings) Settings {
	out := make(map[string]value, len(base.values)+len(overrides.values))
	for k, v := range base.values {
		out[k] = v
	}

	for k, v := range overrides.values {
		out[k] = v
	}

	return Settings{values: out}
}

// Len returns the number of keys.
func (s Settings) Len() int { return len(s.values) }

// Has reports whether key is set.
func (s Settings) Has(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Keys returns the keys in ascending order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Get returns the raw value of key. List values are joined with commas.
func (s Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok {
		return "", false
	}

	if v.isList {
		return strings.Join(v.list, ","), true
	}

	return v.scalar, true
}

// GetDefault returns the value of key, or def when the key is absent.
func (s Settings) GetDefault(key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}

	return def
}

// GetBool parses key as a boolean, returning def when the key is absent.
func (s Settings) GetBool(key string, def bool) (bool, error) {
	raw, ok := s.Get(key)
	if !ok {
		return def, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, ewrap.Wrapf(sentinel.ErrInvalidSettingValue, "%s=%q is not a boolean", key, raw)
	}

	return b, nil
}

// GetInt parses key as an integer, returning def when the key is absent.
func (s Settings) GetInt(key string, def int) (int, error) {
	raw, ok := s.Get(key)
	if !ok {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, ewrap.Wrapf(sentinel.ErrInvalidSettingValue, "%s=%q is not an integer", key, raw)
	}

	return n, nil
}

// GetList returns key as a list. A scalar is split on commas; an absent key yields nil.
func (s Settings) GetList(key string) []string {
	v, ok := s.values[key]
	if !ok {
		return nil
	}

	if v.isList {
		return slices.Clone(v.list)
	}

	if v.scalar == "" {
		return []string{}
	}

	parts := strings.Split(v.scalar, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// Equal reports whether both layers hold the same keys and values.
func (s Settings) Equal(other Settings) bool {
	if len(s.values) != len(other.values) {
		return false
	}

	for k, v := range s.values {
		ov, ok := other.values[k]
		if !ok || !v.equal(ov) {
			return false
		}
	}

	return true
}

// Fingerprint hashes the sorted key/value pairs with xxhash64. Equal layers share a fingerprint.
func (s Settings) Fingerprint() uint64 {
	d := xxhash.New()
	for _, k := range s.Keys() {
		v := s.values[k]

		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})

		if v.isList {
			_, _ = d.Write([]byte{'L'})
			for _, item := range v.list {
				_, _ = d.WriteString(item)
				_, _ = d.Write([]byte{0})
			}
		} else {
			_, _ = d.Write([]byte{'S'})
			_, _ = d.WriteString(v.scalar)
		}

		_, _ = d.Write([]byte{'\n'})
	}

	return d.Sum64()
}

// String renders the layer as sorted key=value lines.
func (s Settings) String() string {
	var sb strings.Builder
	for _, k := range s.Keys() {
		v := s.values[k]

		sb.WriteString(k)
		sb.WriteByte('=')

		if v.isList {
			sb.WriteByte('[')
			sb.WriteString(strings.Join(v.list, ", "))
			sb.WriteByte(']')
		} else {
			sb.WriteString(v.scalar)
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}
