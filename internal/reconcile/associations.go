package reconcile

import (
	"context"
	"log"

	"github.com/imamik/tgwsync/internal/platform/ec2"
)

// reconcileAssociations converges the table's attachment associations to
// the desired set. Missing attachments are associated, extra ones
// disassociated, each followed by a readiness poll. The first failure
// aborts; already-applied changes stay.
func (r *Reconciler) reconcileAssociations(ctx context.Context, tableID string, desired []string) (bool, error) {
	current, err := r.api.ListAssociations(ctx, tableID)
	if err != nil {
		return false, err
	}

	existing := make(map[string]bool, len(current))
	for _, association := range current {
		if association.State == ec2.AssociationStateDisassociated {
			continue
		}
		existing[association.AttachmentID] = true
	}

	wanted := make(map[string]bool, len(desired))
	for _, attachmentID := range desired {
		wanted[attachmentID] = true
	}

	changed := false

	for _, attachmentID := range desired {
		if existing[attachmentID] {
			continue
		}
		changed = true
		if r.dryRun {
			continue
		}
		log.Printf("Associating %s with %s", attachmentID, tableID)
		if err := r.api.Associate(ctx, tableID, attachmentID); err != nil {
			return changed, err
		}
		if err := r.api.WaitForAssociation(ctx, tableID, attachmentID); err != nil {
			return changed, err
		}
	}

	for _, association := range current {
		if association.State == ec2.AssociationStateDisassociated || wanted[association.AttachmentID] {
			continue
		}
		changed = true
		if r.dryRun {
			continue
		}
		log.Printf("Disassociating %s from %s", association.AttachmentID, tableID)
		if err := r.api.Disassociate(ctx, tableID, association.AttachmentID); err != nil {
			return changed, err
		}
		if err := r.api.WaitForDisassociation(ctx, tableID, association.AttachmentID); err != nil {
			return changed, err
		}
	}

	return changed, nil
}
