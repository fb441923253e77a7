package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/libs/serializer"
	"github.com/hyp3rd/hypertopo/pkg/settings"
)

const formatText = "text"

func writeSettings(w io.Writer, format string, s settings.Settings) error {
	if format == formatText {
		_, err := io.WriteString(w, s.String())

		return err
	}

	ser, err := serializer.New(format)
	if err != nil {
		return err
	}

	data, err := serializer.MarshalSettings(ser, s)
	if err != nil {
		return err
	}

	return writeData(w, data)
}

// describe collects a serializable summary of the topology.
func describe(ctx context.Context, svc hypertopo.Service) (map[string]any, error) {
	topo := svc.Topology()

	nodes, err := svc.Nodes(ctx)
	if err != nil {
		return nil, err
	}

	hosts, err := svc.SeedAddresses(ctx)
	if err != nil {
		return nil, err
	}

	mode, err := topo.Mode()
	if err != nil {
		return nil, err
	}

	seeds := topo.SeedOrdinals()

	list := make([]any, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, map[string]any{
			"ordinal": n.Ordinal,
			"address": n.Address,
			"id":      n.ID,
			"seed":    n.IsSeed(seeds),
		})
	}

	d := map[string]any{
		"id":         topo.ID(),
		"nodes":      topo.NodeCount(),
		"unicast":    topo.IsUnicast(),
		"mode":       mode.String(),
		"process_id": topo.ProcessID(),
		"members":    list,
	}

	if window, ok := topo.PortWindow(); ok {
		d["scope"] = topo.Scope().String()
		d["base_port"] = topo.BasePort()
		d["port_window"] = []int{window.First, window.Last}
		d["seeds"] = seeds
		d["seed_hosts"] = hosts
	}

	return d, nil
}

func writeDescription(w io.Writer, format string, d map[string]any) error {
	if format == formatText {
		return writeDescriptionText(w, d)
	}

	ser, err := serializer.New(format)
	if err != nil {
		return err
	}

	data, err := ser.Marshal(d)
	if err != nil {
		return err
	}

	return writeData(w, data)
}

func writeDescriptionText(w io.Writer, d map[string]any) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "topology %v: %v nodes, mode %v, unicast %v\n", d["id"], d["nodes"], d["mode"], d["unicast"])

	if window, ok := d["port_window"].([]int); ok {
		fmt.Fprintf(&sb, "scope %v, process %v, ports %d-%d\n", d["scope"], d["process_id"], window[0], window[1])
		fmt.Fprintf(&sb, "seeds %v\n", d["seed_hosts"])
	}

	members, _ := d["members"].([]any)
	for _, m := range members {
		n, ok := m.(map[string]any)
		if !ok {
			continue
		}

		marker := ""
		if n["seed"] == true {
			marker = " (seed)"
		}

		fmt.Fprintf(&sb, "  %v\t%v\t%v%s\n", n["ordinal"], n["id"], n["address"], marker)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeData(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	if err != nil {
		return err
	}

	if len(data) > 0 && data[len(data)-1] != '\n' && isTextual(data) {
		_, err = io.WriteString(w, "\n")
	}

	return err
}

func isTextual(data []byte) bool {
	return data[0] == '{' || data[0] == '['
}
