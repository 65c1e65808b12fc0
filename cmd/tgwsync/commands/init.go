package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tgwsync/cmd/tgwsync/handlers"
)

// Init returns the command for interactively creating a spec file.
//
// This command guides the user through describing a route table with an
// interactive wizard: which transit gateway it lives in, the tags that
// identify it, the attachments to associate, and the static routes.
//
// Flags:
//
//	--output, -o: Path to output file (default "tgwsync.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a spec file",
		Long: `Interactively create a route table spec file.

The wizard asks about:

  - AWS region
  - Transit gateway ID
  - Tags that identify the route table
  - Attachment IDs to associate
  - Static routes (one "CIDR attachment-id" pair per line)

The generated file can be edited by hand afterwards; 'tgwsync apply'
re-reads it on every run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "tgwsync.yaml", "Output file path")

	return cmd
}
