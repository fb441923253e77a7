package main

import (
	"strconv"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

func newNodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "node <ordinal>",
		Short: "Print the settings of one node",
		Long: `Print the effective settings of the node at <ordinal>.

Examples:
  topogen node 0
  topogen node 1 --nodes 5 --mode networked -o yaml
  topogen node 2 --set discovery.multicast.enabled=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal, err := strconv.Atoi(args[0])
			if err != nil {
				return ewrap.Wrapf(sentinel.ErrOrdinalOutOfRange, "ordinal %q is not a number", args[0])
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			s, err := svc.NodeSettings(cmd.Context(), ordinal)
			if err != nil {
				return err
			}

			return writeSettings(a.stdout, a.v.GetString("output"), s)
		},
	}
}

func newClientCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Print the settings of a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			s, err := svc.ClientSettings(cmd.Context())
			if err != nil {
				return err
			}

			return writeSettings(a.stdout, a.v.GetString("output"), s)
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the port window, seeds and node identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			d, err := describe(cmd.Context(), svc)
			if err != nil {
				return err
			}

			return writeDescription(a.stdout, a.v.GetString("output"), d)
		},
	}
}
