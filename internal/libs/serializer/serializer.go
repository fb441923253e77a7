package serializer

import (
	"reflect"
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

// Serializer names registered by default.
const (
	TypeDefault = "default"
	TypeJSON    = "json"
	TypeMsgpack = "msgpack"
	TypeCBOR    = "cbor"
	TypeYAML    = "yaml"
)

//nolint:gochecknoglobals
var mapStringAnyType = reflect.TypeFor[map[string]any]()

// ISerializer is the interface that wraps the basic serializer methods.
type ISerializer interface {
	// Marshal serializes the given value into a byte slice.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes the given byte slice into the given value.
	Unmarshal(data []byte, v any) error
}

// Registry manages serializer constructors.
type Registry struct {
	serializers map[string]func() ISerializer
}

// getDefaultSerializers returns the default set of serializers.
func getDefaultSerializers() map[string]func() ISerializer {
	return map[string]func() ISerializer{
		TypeDefault: func() ISerializer {
			return &DefaultJSONSerializer{}
		},
		TypeJSON: func() ISerializer {
			return &DefaultJSONSerializer{Indent: true}
		},
		TypeMsgpack: func() ISerializer {
			return &MsgpackSerializer{}
		},
		TypeCBOR: func() ISerializer {
			return NewCBORSerializer()
		},
		TypeYAML: func() ISerializer {
			return &YAMLSerializer{}
		},
	}
}

// NewSerializerRegistry creates a new serializer registry with default serializers pre-registered.
func NewSerializerRegistry() *Registry {
	registry := &Registry{
		serializers: make(map[string]func() ISerializer),
	}
	// Register the default serializers
	for name, createFunc := range getDefaultSerializers() {
		registry.Register(name, createFunc)
	}

	return registry
}

// NewEmptySerializerRegistry creates a new serializer registry without default serializers.
func NewEmptySerializerRegistry() *Registry {
	return &Registry{
		serializers: make(map[string]func() ISerializer),
	}
}

// Register registers a new serializer with the given name.
func (r *Registry) Register(serializerType string, createFunc func() ISerializer) {
	r.serializers[serializerType] = createFunc
}

// Names returns the registered serializer names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.serializers))
	for name := range r.serializers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// New returns a new serializer based on the serializerType.
func (r *Registry) New(serializerType string) (ISerializer, error) {
	if serializerType == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "serializerType")
	}

	createFunc, ok := r.serializers[serializerType]
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrSerializerNotFound, serializerType)
	}

	return createFunc(), nil
}

// New returns a new serializer using a new registry instance with default serializers.
func New(serializerType string) (ISerializer, error) {
	registry := NewSerializerRegistry()

	return registry.New(serializerType)
}
