package reconcile

import (
	"context"
	"fmt"

	"github.com/imamik/tgwsync/internal/config"
	"github.com/imamik/tgwsync/internal/platform/ec2"
)

// locate resolves the spec to zero or one remote route table. A nil result
// with nil error means no table matched.
func (r *Reconciler) locate(ctx context.Context, spec *config.Spec) (*ec2.RouteTable, error) {
	switch spec.Lookup {
	case config.LookupByID:
		return r.api.DescribeRouteTable(ctx, spec.RouteTableID)
	case config.LookupByTag:
		// Without tags there is nothing to look up; the caller treats the
		// table as absent.
		if len(spec.Tags) == 0 {
			return nil, nil
		}
		return r.locateByTags(ctx, spec.TransitGatewayID, spec.Tags)
	default:
		return nil, fmt.Errorf("unknown lookup mode %q", spec.Lookup)
	}
}

// locateByTags finds the single route table in the transit gateway whose
// tag set contains every desired tag. More than one match is fatal.
func (r *Reconciler) locateByTags(ctx context.Context, transitGatewayID string, tags map[string]string) (*ec2.RouteTable, error) {
	tables, err := r.api.DescribeRouteTables(ctx, transitGatewayID)
	if err != nil {
		return nil, err
	}

	var match *ec2.RouteTable
	for i := range tables {
		candidateTags, err := r.api.GetTags(ctx, tables[i].ID)
		if err != nil {
			return nil, err
		}
		if !tagsMatch(tags, candidateTags) {
			continue
		}
		if match != nil {
			return nil, ErrAmbiguousMatch
		}
		match = &tables[i]
	}

	return match, nil
}

// tagsMatch reports whether candidate contains every key/value pair of want.
func tagsMatch(want, candidate map[string]string) bool {
	for key, value := range want {
		if candidate[key] != value {
			return false
		}
	}
	return true
}
