package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tgwsync/cmd/tgwsync/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the route table named by the spec regardless
// of the spec's state field. Attachments are disassociated first so the
// delete cannot fail on a still-associated table.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the route table and its associations",
		Long: `Destroy deletes the transit gateway route table named by the spec.

All attachment associations are removed first, then the table itself is
deleted. Deleting a table that does not exist is a no-op.

Example:
  tgwsync destroy -c tgwsync.yaml

WARNING: This operation is irreversible. Routes through this table stop
working as soon as the attachments are disassociated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to spec file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
