package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// searchRoutesMax is the API ceiling for SearchTransitGatewayRoutes results.
const searchRoutesMax = 1000

// ListActiveRoutes returns the active routes of the table. The search API
// does not paginate; it flags truncation instead, which is surfaced as an
// error rather than silently diffing against a partial table.
func (c *Client) ListActiveRoutes(ctx context.Context, tableID string) ([]Route, error) {
	var out *ec2.SearchTransitGatewayRoutesOutput
	err := c.withBackoff(ctx, func() error {
		var callErr error
		out, callErr = c.api.SearchTransitGatewayRoutes(ctx, &ec2.SearchTransitGatewayRoutesInput{
			TransitGatewayRouteTableId: aws.String(tableID),
			Filters: []types.Filter{{
				Name:   aws.String("state"),
				Values: []string{"active"},
			}},
			MaxResults: aws.Int32(searchRoutesMax),
		})
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search routes for %s: %w", tableID, err)
	}

	if aws.ToBool(out.AdditionalRoutesAvailable) {
		return nil, fmt.Errorf("route table %s has more than %d active routes; refusing partial diff", tableID, searchRoutesMax)
	}

	routes := make([]Route, 0, len(out.Routes))
	for _, route := range out.Routes {
		routes = append(routes, routeFromSDK(route))
	}
	return routes, nil
}

// CreateRoute creates a static route for the destination CIDR pointing at
// the attachment.
func (c *Client) CreateRoute(ctx context.Context, tableID, destCIDR, attachmentID string) error {
	_, err := c.api.CreateTransitGatewayRoute(ctx, &ec2.CreateTransitGatewayRouteInput{
		TransitGatewayRouteTableId: aws.String(tableID),
		DestinationCidrBlock:       aws.String(destCIDR),
		TransitGatewayAttachmentId: aws.String(attachmentID),
	})
	if err != nil {
		return fmt.Errorf("failed to create route %s via %s on %s: %w", destCIDR, attachmentID, tableID, err)
	}
	return nil
}

// DeleteRoute deletes the static route for the destination CIDR.
func (c *Client) DeleteRoute(ctx context.Context, tableID, destCIDR string) error {
	_, err := c.api.DeleteTransitGatewayRoute(ctx, &ec2.DeleteTransitGatewayRouteInput{
		TransitGatewayRouteTableId: aws.String(tableID),
		DestinationCidrBlock:       aws.String(destCIDR),
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete route %s on %s: %w", destCIDR, tableID, err)
	}
	return nil
}
