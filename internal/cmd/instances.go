package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/dandi/dandi-go/internal/consts"
	"github.com/spf13/cobra"
)

// NewInstancesCommand creates the instances command
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List known DANDI archive instances",
		Long: `List the DANDI archive deployments this tool knows about, with their
web interface and API endpoints. Pass one of the listed names to the
--instance flag of other commands, or set it as "instance" in the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInstances(cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// printInstances writes the instance table sorted by name.
func printInstances(output io.Writer) error {
	names := make([]string, 0, len(consts.KnownInstances))
	for name := range consts.KnownInstances {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(output, "%-30s %-40s %s\n", "NAME", "GUI", "API")
	for _, name := range names {
		instance := consts.KnownInstances[name]
		fmt.Fprintf(output, "%-30s %-40s %s\n", instance.Name, instance.GUI, instance.API)
	}
	return nil
}
