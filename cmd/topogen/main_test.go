package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/hypertopo/internal/libs/serializer"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestNodeCommand_EmbeddedJSON(t *testing.T) {
	out, _, err := execute(t, "node", "1", "--process-id", "1", "--mode", "embedded")
	assert.Nil(t, err)

	var got map[string]any
	assert.Nil(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "node_1", got["transport.local.address"])
	assert.Equal(t, "false", got["discovery.multicast.enabled"])
	assert.Equal(t, []any{"node_0", "node_1", "node_2"}, got["discovery.unicast.hosts"])
}

func TestNodeCommand_NetworkedText(t *testing.T) {
	out, _, err := execute(t, "node", "0", "--nodes", "2", "--process-id", "1", "--mode", "networked", "-o", "text")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "transport.tcp.port=31000\n"))
	assert.True(t, strings.Contains(out, "discovery.unicast.hosts=[localhost:31000, localhost:31001]\n"))
}

func TestNodeCommand_SetOverridesComputed(t *testing.T) {
	out, _, err := execute(t, "node", "0", "--process-id", "0", "-o", "yaml",
		"--set", "discovery.multicast.enabled=true")
	assert.Nil(t, err)

	s, err := serializer.UnmarshalSettings(&serializer.YAMLSerializer{}, []byte(out))
	assert.Nil(t, err)
	assert.Equal(t, "true", s.GetDefault("discovery.multicast.enabled", ""))
}

func TestNodeCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "node", "9", "--process-id", "0")
	assert.NotNil(t, err)

	_, _, err = execute(t, "node", "x")
	assert.NotNil(t, err)

	_, _, err = execute(t, "node", "0", "--set", "novalue")
	assert.NotNil(t, err)

	_, _, err = execute(t, "node", "0", "--process-id", "0", "-o", "xml")
	assert.NotNil(t, err)
}

func TestClientCommand(t *testing.T) {
	out, _, err := execute(t, "client", "--process-id", "0", "-o", "text")
	assert.Nil(t, err)
	assert.Equal(t, "discovery.type=unicast\ngateway.type=local\n", out)
}

func TestDescribeCommand(t *testing.T) {
	out, _, err := execute(t, "describe", "--nodes", "4", "--seed-ordinals", "2,0",
		"--process-id", "2", "--mode", "networked")
	assert.Nil(t, err)

	var got map[string]any
	assert.Nil(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(32000), got["base_port"])
	assert.Equal(t, []any{float64(2), float64(0)}, got["seeds"])
	assert.Equal(t, []any{"localhost:32002", "localhost:32000"}, got["seed_hosts"])
	assert.Equal(t, 4, len(got["members"].([]any)))
}

func TestDescribeCommand_Text(t *testing.T) {
	out, _, err := execute(t, "describe", "--process-id", "0", "-o", "text")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "ports 30000-30099"))
	assert.True(t, strings.Contains(out, "(seed)"))
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topogen.yaml")

	err := os.WriteFile(path, []byte("nodes: 5\nprocess_id: 3\nsettings:\n  cluster:\n    name: from-file\n"), 0o600)
	assert.Nil(t, err)

	t.Setenv("HYPERTOPO_MODE", "networked")

	out, _, err := execute(t, "node", "4", "--config", path, "-o", "text")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(out, "cluster.name=from-file\n"))
	assert.True(t, strings.Contains(out, "transport.tcp.port=33004\n"))
}

func TestMetricsFlag(t *testing.T) {
	_, stderr, err := execute(t, "node", "0", "--process-id", "0", "--metrics")
	assert.Nil(t, err)
	assert.True(t, strings.Contains(stderr, `hypertopo_calls_total{method="NodeSettings",status="ok"} 1`))
}

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"a=1", "b.c=x=y", "a=2"})
	assert.Nil(t, err)
	assert.Equal(t, map[string]any{"a": "2", "b.c": "x=y"}, got)

	_, err = parseSets([]string{"=v"})
	assert.True(t, errors.Is(err, sentinel.ErrInvalidSettingValue))
}
