// Command topogen prints the settings hypertopo generates for a simulated cluster.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(viper.New(), stdout, stderr)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: v, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "topogen",
		Short: "Generate deterministic test cluster topologies",
		Long: `topogen - settings for simulated test clusters.

Commands:
  topogen node <ordinal>   Settings of one node
  topogen client           Settings of a client
  topogen describe         Port window, seeds and node identities

Every flag can also be set in a config file (--config) or through
HYPERTOPO_<KEY> environment variables, e.g. HYPERTOPO_NODES=5.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	bindFlags(rootCmd, v)

	rootCmd.AddCommand(newNodeCmd(a))
	rootCmd.AddCommand(newClientCmd(a))
	rootCmd.AddCommand(newDescribeCmd(a))

	return rootCmd
}
