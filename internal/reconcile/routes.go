package reconcile

import (
	"context"
	"log"

	"github.com/imamik/tgwsync/internal/config"
)

// reconcileRoutes converges the table's active static routes to the
// desired list. The diff is keyed by destination CIDR: a desired CIDR with
// no active route is created, an active CIDR not in the desired list is
// deleted. An attachment change behind an existing CIDR is not detected.
// After any mutation the table is polled until the active CIDR set matches.
func (r *Reconciler) reconcileRoutes(ctx context.Context, tableID string, desired []config.RouteSpec) (bool, error) {
	current, err := r.api.ListActiveRoutes(ctx, tableID)
	if err != nil {
		return false, err
	}

	existing := make(map[string]bool, len(current))
	for _, route := range current {
		existing[route.DestinationCIDR] = true
	}

	wanted := make(map[string]bool, len(desired))
	finalCIDRs := make([]string, 0, len(desired))
	for _, route := range desired {
		wanted[route.DestCIDR] = true
		finalCIDRs = append(finalCIDRs, route.DestCIDR)
	}

	changed := false

	for _, route := range desired {
		if existing[route.DestCIDR] {
			continue
		}
		changed = true
		if r.dryRun {
			continue
		}
		log.Printf("Creating route %s via %s on %s", route.DestCIDR, route.AttachmentID, tableID)
		if err := r.api.CreateRoute(ctx, tableID, route.DestCIDR, route.AttachmentID); err != nil {
			return changed, err
		}
	}

	for _, route := range current {
		if wanted[route.DestinationCIDR] {
			continue
		}
		changed = true
		if r.dryRun {
			continue
		}
		log.Printf("Deleting route %s on %s", route.DestinationCIDR, tableID)
		if err := r.api.DeleteRoute(ctx, tableID, route.DestinationCIDR); err != nil {
			return changed, err
		}
	}

	if changed && !r.dryRun {
		if err := r.api.WaitForRoutes(ctx, tableID, finalCIDRs); err != nil {
			return changed, err
		}
	}

	return changed, nil
}
