package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tgwsync/cmd/tgwsync/handlers"
)

// Apply returns the command for reconciling a route table to its spec.
//
// This command loads the spec file, looks up the route table by ID or by
// tags, and converges existence, tags, associations, and routes.
//
// Optional flags:
//
//	--config, -c: Path to spec YAML file (default: tgwsync.yaml)
//	--dry-run: Report what would change without mutating anything
//
// Credentials come from the standard AWS environment (env vars, shared
// config, instance role).
func Apply() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the route table",
		Long: `Create or update a transit gateway route table.

This command converges one route table to the state described in the spec
file: the table itself, its tags, its attachment associations, and its
static routes. Re-running against converged state changes nothing.

If no spec file is specified, it looks for tgwsync.yaml in the current
directory. Use 'tgwsync init' to create one.

Examples:
  # Reconcile using tgwsync.yaml in current directory
  tgwsync apply

  # Reconcile using a specific spec file
  tgwsync apply -c production.yaml

  # Preview the changes without applying them
  tgwsync apply --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to spec file (default: tgwsync.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without applying them")

	return cmd
}
