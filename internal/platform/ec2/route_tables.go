package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DescribeRouteTable returns the route table with the given ID, or nil if
// the ID is unknown to the API.
func (c *Client) DescribeRouteTable(ctx context.Context, id string) (*RouteTable, error) {
	var out *ec2.DescribeTransitGatewayRouteTablesOutput
	err := c.withBackoff(ctx, func() error {
		var callErr error
		out, callErr = c.api.DescribeTransitGatewayRouteTables(ctx, &ec2.DescribeTransitGatewayRouteTablesInput{
			TransitGatewayRouteTableIds: []string{id},
		})
		return callErr
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe route table %s: %w", id, err)
	}

	if len(out.TransitGatewayRouteTables) == 0 {
		return nil, nil
	}
	table := routeTableFromSDK(out.TransitGatewayRouteTables[0])
	return &table, nil
}

// DescribeRouteTables returns every route table owned by the transit
// gateway, following pagination.
func (c *Client) DescribeRouteTables(ctx context.Context, transitGatewayID string) ([]RouteTable, error) {
	var tables []RouteTable
	var nextToken *string

	for {
		var out *ec2.DescribeTransitGatewayRouteTablesOutput
		err := c.withBackoff(ctx, func() error {
			var callErr error
			out, callErr = c.api.DescribeTransitGatewayRouteTables(ctx, &ec2.DescribeTransitGatewayRouteTablesInput{
				Filters: []types.Filter{{
					Name:   aws.String("transit-gateway-id"),
					Values: []string{transitGatewayID},
				}},
				NextToken: nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list route tables for %s: %w", transitGatewayID, err)
		}

		for _, table := range out.TransitGatewayRouteTables {
			tables = append(tables, routeTableFromSDK(table))
		}

		if out.NextToken == nil {
			return tables, nil
		}
		nextToken = out.NextToken
	}
}

// CreateRouteTable creates a route table in the transit gateway. The
// returned table is typically still in the pending state; callers wait with
// WaitForRouteTable before using it.
func (c *Client) CreateRouteTable(ctx context.Context, transitGatewayID string) (*RouteTable, error) {
	out, err := c.api.CreateTransitGatewayRouteTable(ctx, &ec2.CreateTransitGatewayRouteTableInput{
		TransitGatewayId: aws.String(transitGatewayID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create route table in %s: %w", transitGatewayID, err)
	}
	if out.TransitGatewayRouteTable == nil {
		return nil, fmt.Errorf("create route table in %s returned no table", transitGatewayID)
	}

	table := routeTableFromSDK(*out.TransitGatewayRouteTable)
	return &table, nil
}

// DeleteRouteTable deletes the route table. Deleting an already-deleted
// table is not an error.
func (c *Client) DeleteRouteTable(ctx context.Context, id string) error {
	_, err := c.api.DeleteTransitGatewayRouteTable(ctx, &ec2.DeleteTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(id),
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete route table %s: %w", id, err)
	}
	return nil
}
