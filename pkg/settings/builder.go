package settings

import (
	"slices"
	"strconv"
)

// Builder accumulates keys for a new Settings layer. Later puts override earlier ones.
// A Builder is not safe for concurrent use; the Settings it builds are.
type Builder struct {
	values map[string]value
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{values: map[string]value{}}
}

// Put sets a scalar value.
func (b *Builder) Put(key, v string) *Builder {
	b.values[key] = value{scalar: v}

	return b
}

// PutBool sets a boolean value.
func (b *Builder) PutBool(key string, v bool) *Builder {
	return b.Put(key, strconv.FormatBool(v))
}

// PutInt sets an integer value.
func (b *Builder) PutInt(key string, v int) *Builder {
	return b.Put(key, strconv.Itoa(v))
}

// PutList sets an ordered list value, replacing any previous value of key.
func (b *Builder) PutList(key string, values ...string) *Builder {
	b.values[key] = value{list: slices.Clone(values), isList: true}

	return b
}

// PutSettings copies every key of s into the builder, overriding existing keys.
func (b *Builder) PutSettings(s Settings) *Builder {
	for k, v := range s.values {
		b.values[k] = v
	}

	return b
}

// Remove deletes key from the builder.
func (b *Builder) Remove(key string) *Builder {
	delete(b.values, key)

	return b
}

// Build returns an immutable snapshot; the builder can keep being used afterwards.
func (b *Builder) Build() Settings {
	out := make(map[string]value, len(b.values))
	for k, v := range b.values {
		if v.isList {
			v.list = slices.Clone(v.list)
		}

		out[k] = v
	}

	return Settings{values: out}
}
