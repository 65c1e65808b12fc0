package ec2

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrWaitTimeout is wrapped by every poller that gives up before its
// condition holds.
var ErrWaitTimeout = errors.New("timed out waiting for condition")

// poll runs check every PollInterval until it reports done, fails, or the
// timeout elapses.
func (c *Client) poll(ctx context.Context, timeout time.Duration, what string, check func(context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.timeouts.PollInterval)
	defer ticker.Stop()

	for {
		done, err := check(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%s: %w", what, ErrWaitTimeout)
			}
			return fmt.Errorf("%s: %w", what, err)
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%s: %w", what, ErrWaitTimeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForRouteTable polls until the route table reaches the available
// state. A table the API does not report yet counts as still pending.
func (c *Client) WaitForRouteTable(ctx context.Context, id string) error {
	return c.poll(ctx, c.timeouts.TableCreate,
		fmt.Sprintf("waiting for route table %s to become available", id),
		func(ctx context.Context) (bool, error) {
			table, err := c.DescribeRouteTable(ctx, id)
			if err != nil {
				return false, err
			}
			return table != nil && table.State == RouteTableStateAvailable, nil
		})
}

// WaitForAssociation polls until the attachment's association reaches the
// associated state.
func (c *Client) WaitForAssociation(ctx context.Context, tableID, attachmentID string) error {
	return c.poll(ctx, c.timeouts.Association,
		fmt.Sprintf("waiting for %s to associate with %s", attachmentID, tableID),
		func(ctx context.Context) (bool, error) {
			associations, err := c.ListAssociations(ctx, tableID)
			if err != nil {
				return false, err
			}
			for _, association := range associations {
				if association.AttachmentID == attachmentID {
					return association.State == AssociationStateAssociated, nil
				}
			}
			return false, nil
		})
}

// WaitForDisassociation polls until the attachment's association is gone or
// fully disassociated.
func (c *Client) WaitForDisassociation(ctx context.Context, tableID, attachmentID string) error {
	return c.poll(ctx, c.timeouts.Association,
		fmt.Sprintf("waiting for %s to disassociate from %s", attachmentID, tableID),
		func(ctx context.Context) (bool, error) {
			associations, err := c.ListAssociations(ctx, tableID)
			if err != nil {
				return false, err
			}
			for _, association := range associations {
				if association.AttachmentID == attachmentID {
					return association.State == AssociationStateDisassociated, nil
				}
			}
			return true, nil
		})
}

// WaitForRoutes polls until the table's active CIDR set equals destCIDRs.
func (c *Client) WaitForRoutes(ctx context.Context, tableID string, destCIDRs []string) error {
	want := append([]string(nil), destCIDRs...)
	sort.Strings(want)

	return c.poll(ctx, c.timeouts.RouteSettle,
		fmt.Sprintf("waiting for routes on %s to settle", tableID),
		func(ctx context.Context) (bool, error) {
			routes, err := c.ListActiveRoutes(ctx, tableID)
			if err != nil {
				return false, err
			}
			got := make([]string, 0, len(routes))
			for _, route := range routes {
				got = append(got, route.DestinationCIDR)
			}
			sort.Strings(got)

			if len(got) != len(want) {
				return false, nil
			}
			for i := range got {
				if got[i] != want[i] {
					return false, nil
				}
			}
			return true, nil
		})
}
