// Package reconcile drives a transit gateway route table to a desired
// state: existence, tags, attachment associations, and static routes.
//
// Every reconciliation re-derives its diff from freshly fetched remote
// state, so each operation is safe to re-run. There is no rollback: the
// first failure aborts the remaining phases and leaves the completed ones
// applied.
package reconcile

import (
	"context"
	"log"

	"github.com/imamik/tgwsync/internal/config"
	"github.com/imamik/tgwsync/internal/platform/ec2"
)

// Reconciler converges one route table per call. It holds no state between
// calls beyond the control plane client.
type Reconciler struct {
	api    ec2.API
	dryRun bool
}

// New creates a Reconciler. With dryRun set, no mutating API call is ever
// issued; results report what would change.
func New(api ec2.API, dryRun bool) *Reconciler {
	return &Reconciler{api: api, dryRun: dryRun}
}

// Run reconciles according to the spec's desired state.
func (r *Reconciler) Run(ctx context.Context, spec *config.Spec) (*Result, error) {
	if spec.State == config.StateAbsent {
		return r.EnsureAbsent(ctx, spec)
	}
	return r.EnsurePresent(ctx, spec)
}

// EnsurePresent creates the route table if it does not exist, then
// converges tags, associations, and routes, in that order. Sections left
// nil in the spec are not managed.
func (r *Reconciler) EnsurePresent(ctx context.Context, spec *config.Spec) (*Result, error) {
	table, err := r.locate(ctx, spec)
	if err != nil {
		return nil, phaseErr(PhaseLookup, err)
	}

	changed := false

	if table == nil {
		changed = true
		if r.dryRun {
			// Nothing to project against; report the would-be creation.
			return &Result{Changed: true, RouteTable: r.plannedSnapshot(spec)}, nil
		}

		log.Printf("Creating route table in %s", spec.TransitGatewayID)
		table, err = r.api.CreateRouteTable(ctx, spec.TransitGatewayID)
		if err != nil {
			return nil, phaseErr(PhaseCreate, err)
		}
		if err := r.api.WaitForRouteTable(ctx, table.ID); err != nil {
			return nil, phaseErr(PhaseCreate, err)
		}
	}

	var projectedTags map[string]string
	if spec.Tags != nil {
		tagsChanged, finalTags, err := r.reconcileTags(ctx, table.ID, spec.Tags, spec.PurgeTags)
		if err != nil {
			return nil, phaseErr(PhaseTags, err)
		}
		changed = changed || tagsChanged
		projectedTags = finalTags
	}

	if spec.Associations != nil {
		associationsChanged, err := r.reconcileAssociations(ctx, table.ID, spec.Associations)
		if err != nil {
			return nil, phaseErr(PhaseAssociations, err)
		}
		changed = changed || associationsChanged
	}

	if spec.Routes != nil {
		routesChanged, err := r.reconcileRoutes(ctx, table.ID, spec.Routes)
		if err != nil {
			return nil, phaseErr(PhaseRoutes, err)
		}
		changed = changed || routesChanged
	}

	snapshot, err := r.snapshot(ctx, table.ID)
	if err != nil {
		return nil, phaseErr(PhaseRefresh, err)
	}
	if r.dryRun && projectedTags != nil {
		// The remote tags have not been touched; show the projection.
		snapshot.Tags = projectedTags
	}

	return &Result{Changed: changed, RouteTable: snapshot}, nil
}

// EnsureAbsent deletes the route table if it exists. Attachments are
// disassociated first so the delete cannot fail on a still-associated
// table.
func (r *Reconciler) EnsureAbsent(ctx context.Context, spec *config.Spec) (*Result, error) {
	table, err := r.locate(ctx, spec)
	if err != nil {
		return nil, phaseErr(PhaseLookup, err)
	}

	if table == nil {
		return &Result{Changed: false}, nil
	}

	if r.dryRun {
		return &Result{Changed: true}, nil
	}

	associations, err := r.api.ListAssociations(ctx, table.ID)
	if err != nil {
		return nil, phaseErr(PhaseDelete, err)
	}
	for _, association := range associations {
		if association.State == ec2.AssociationStateDisassociated {
			continue
		}
		log.Printf("Disassociating %s before deleting %s", association.AttachmentID, table.ID)
		if association.State != ec2.AssociationStateDisassociating {
			if err := r.api.Disassociate(ctx, table.ID, association.AttachmentID); err != nil {
				return nil, phaseErr(PhaseDelete, err)
			}
		}
		if err := r.api.WaitForDisassociation(ctx, table.ID, association.AttachmentID); err != nil {
			return nil, phaseErr(PhaseDelete, err)
		}
	}

	log.Printf("Deleting route table %s", table.ID)
	if err := r.api.DeleteRouteTable(ctx, table.ID); err != nil {
		return nil, phaseErr(PhaseDelete, err)
	}

	return &Result{Changed: true}, nil
}

// snapshot re-fetches the full observed state of the table.
func (r *Reconciler) snapshot(ctx context.Context, tableID string) (*Snapshot, error) {
	table, err := r.api.DescribeRouteTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, nil
	}

	associations, err := r.api.ListAssociations(ctx, tableID)
	if err != nil {
		return nil, err
	}
	routes, err := r.api.ListActiveRoutes(ctx, tableID)
	if err != nil {
		return nil, err
	}
	tags, err := r.api.GetTags(ctx, tableID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:               table.ID,
		RouteTableID:     table.ID,
		TransitGatewayID: table.TransitGatewayID,
		State:            table.State,
		Associations:     associations,
		Routes:           routes,
		Tags:             tags,
	}, nil
}

// plannedSnapshot describes a table that would be created in dry-run mode.
// The placeholder ID mirrors what the table would look like; it is not a
// real resource.
func (r *Reconciler) plannedSnapshot(spec *config.Spec) *Snapshot {
	const placeholderID = "tgw-rtb-xxxxxxxxxxxxxxxxx"

	snapshot := &Snapshot{
		ID:               placeholderID,
		RouteTableID:     placeholderID,
		TransitGatewayID: spec.TransitGatewayID,
		State:            "pending",
		Tags:             spec.Tags,
	}
	for _, attachmentID := range spec.Associations {
		snapshot.Associations = append(snapshot.Associations, ec2.Association{
			AttachmentID: attachmentID,
			State:        ec2.AssociationStateAssociated,
		})
	}
	for _, route := range spec.Routes {
		snapshot.Routes = append(snapshot.Routes, ec2.Route{
			DestinationCIDR: route.DestCIDR,
			AttachmentIDs:   []string{route.AttachmentID},
			State:           "active",
			Type:            "static",
		})
	}
	return snapshot
}
