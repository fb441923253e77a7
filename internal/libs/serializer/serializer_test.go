package serializer

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/settings"
)

func TestRegistry_DefaultNames(t *testing.T) {
	want := []string{TypeCBOR, TypeDefault, TypeJSON, TypeMsgpack, TypeYAML}
	if got := NewSerializerRegistry().Names(); !slices.Equal(got, want) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestRegistry_Errors(t *testing.T) {
	if _, err := New(""); !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Fatalf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	if _, err := New("xml"); !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Fatalf("expected ErrSerializerNotFound, got %v", err)
	}

	if _, err := NewEmptySerializerRegistry().New(TypeDefault); !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Fatalf("empty registry should not resolve defaults, got %v", err)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewEmptySerializerRegistry()
	r.Register("custom", func() ISerializer { return &YAMLSerializer{} })

	s, err := r.New("custom")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok := s.(*YAMLSerializer); !ok {
		t.Fatalf("unexpected serializer %T", s)
	}
}

func TestSettingsSurviveEveryFormat(t *testing.T) {
	in := settings.NewBuilder().
		Put("discovery.multicast.enabled", "false").
		Put("transport.local.address", "node_1").
		Put("gateway.type", "local").
		PutList("discovery.unicast.hosts", "node_0", "node_1", "node_2").
		Build()

	for _, name := range NewSerializerRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			ser, err := New(name)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			data, err := MarshalSettings(ser, in)
			if err != nil {
				t.Fatalf("MarshalSettings: %v", err)
			}

			out, err := UnmarshalSettings(ser, data)
			if err != nil {
				t.Fatalf("UnmarshalSettings: %v", err)
			}

			if !out.Equal(in) {
				t.Fatalf("settings changed:\n%s\nvs\n%s", out, in)
			}
		})
	}
}

func TestUnmarshalSettings_NestedYAML(t *testing.T) {
	doc := `
discovery:
  multicast:
    enabled: false
  unicast:
    hosts: [localhost:31000, localhost:31001]
transport:
  tcp:
    port: 31000
`

	s, err := UnmarshalSettings(&YAMLSerializer{}, []byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalSettings: %v", err)
	}

	if v, _ := s.Get("transport.tcp.port"); v != "31000" {
		t.Fatalf("port = %q", v)
	}

	if v, _ := s.Get("discovery.multicast.enabled"); v != "false" {
		t.Fatalf("multicast = %q", v)
	}

	if got := s.GetList("discovery.unicast.hosts"); !slices.Equal(got, []string{"localhost:31000", "localhost:31001"}) {
		t.Fatalf("hosts = %v", got)
	}
}

func TestJSONIndent(t *testing.T) {
	data, err := (&DefaultJSONSerializer{Indent: true}).Marshal(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if !strings.Contains(string(data), "\n  \"a\"") {
		t.Fatalf("expected indented output, got %s", data)
	}
}

func TestUnmarshalSettings_Malformed(t *testing.T) {
	if _, err := UnmarshalSettings(&DefaultJSONSerializer{}, []byte("{")); err == nil {
		t.Fatal("expected a decode error")
	}
}
