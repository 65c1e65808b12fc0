package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/tgwsync/internal/config"
)

// Destroy handles the destroy command.
//
// It loads the spec and deletes the route table it names, overriding the
// spec's state field. Every attachment association is removed before the
// delete. Destroying a table that does not exist succeeds without changes.
func Destroy(ctx context.Context, configPath string) error {
	spec, err := loadSpec(configPath)
	if err != nil {
		return err
	}

	// The spec may say present; destroy means absent.
	spec.State = config.StateAbsent

	log.Printf("Destroying route table in %s", spec.TransitGatewayID)

	api, err := newAPIClient(ctx, spec.Region, spec.Endpoint, loadTimeouts())
	if err != nil {
		return fmt.Errorf("failed to create EC2 client: %w", err)
	}

	result, err := newReconciler(api, false).Run(ctx, spec)
	if err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	if result.Changed {
		log.Printf("Route table destroyed")
	} else {
		log.Printf("Route table already absent")
	}

	return writeResult(result)
}
