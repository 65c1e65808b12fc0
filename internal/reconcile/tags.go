package reconcile

import (
	"context"
	"log"
)

// reconcileTags converges the resource's tags to desired. With purge, tags
// absent from desired are removed; otherwise they are left alone. Stale
// keys are deleted before additions so a key rename never leaves both
// values applied. Returns the authoritative final tag set, re-fetched after
// any mutation.
func (r *Reconciler) reconcileTags(ctx context.Context, resourceID string, desired map[string]string, purge bool) (bool, map[string]string, error) {
	current, err := r.api.GetTags(ctx, resourceID)
	if err != nil {
		return false, nil, err
	}

	toAdd := make(map[string]string)
	for key, value := range desired {
		if currentValue, ok := current[key]; !ok || currentValue != value {
			toAdd[key] = value
		}
	}

	var toDelete []string
	if purge {
		for key := range current {
			if _, ok := desired[key]; !ok {
				toDelete = append(toDelete, key)
			}
		}
	}

	if len(toAdd) == 0 && len(toDelete) == 0 {
		return false, current, nil
	}

	if r.dryRun {
		return true, projectTags(current, desired, purge), nil
	}

	log.Printf("Reconciling tags on %s: %d to add, %d to delete", resourceID, len(toAdd), len(toDelete))

	if err := r.api.RemoveTags(ctx, resourceID, toDelete); err != nil {
		return false, nil, err
	}
	if err := r.api.AddTags(ctx, resourceID, toAdd); err != nil {
		return false, nil, err
	}

	final, err := r.api.GetTags(ctx, resourceID)
	if err != nil {
		return false, nil, err
	}
	return true, final, nil
}

// projectTags approximates the post-reconciliation tag set without calling
// the API. Used in dry-run mode only.
func projectTags(current, desired map[string]string, purge bool) map[string]string {
	if purge {
		projected := make(map[string]string, len(desired))
		for key, value := range desired {
			projected[key] = value
		}
		return projected
	}

	projected := make(map[string]string, len(current)+len(desired))
	for key, value := range current {
		projected[key] = value
	}
	for key, value := range desired {
		projected[key] = value
	}
	return projected
}
