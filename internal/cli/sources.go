package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List sources and whether they are configured",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	service, err := newService()
	if err != nil {
		return err
	}

	for _, status := range service.Sources() {
		state := "available"
		if !status.Available {
			state = "not configured"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-6s %-15s %s\n", status.Kind, state, status.Intro)
	}
	return nil
}
