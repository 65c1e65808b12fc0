package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ListAssociations returns every attachment association of the route table,
// following pagination. Disassociated entries the API still reports are
// included; callers filter by state.
func (c *Client) ListAssociations(ctx context.Context, tableID string) ([]Association, error) {
	var associations []Association
	var nextToken *string

	for {
		var out *ec2.GetTransitGatewayRouteTableAssociationsOutput
		err := c.withBackoff(ctx, func() error {
			var callErr error
			out, callErr = c.api.GetTransitGatewayRouteTableAssociations(ctx, &ec2.GetTransitGatewayRouteTableAssociationsInput{
				TransitGatewayRouteTableId: aws.String(tableID),
				NextToken:                  nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list associations for %s: %w", tableID, err)
		}

		for _, association := range out.Associations {
			associations = append(associations, associationFromSDK(association))
		}

		if out.NextToken == nil {
			return associations, nil
		}
		nextToken = out.NextToken
	}
}

// Associate associates the attachment with the route table.
func (c *Client) Associate(ctx context.Context, tableID, attachmentID string) error {
	_, err := c.api.AssociateTransitGatewayRouteTable(ctx, &ec2.AssociateTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(tableID),
		TransitGatewayAttachmentId: aws.String(attachmentID),
	})
	if err != nil {
		return fmt.Errorf("failed to associate %s with %s: %w", attachmentID, tableID, err)
	}
	return nil
}

// Disassociate removes the attachment's association with the route table.
func (c *Client) Disassociate(ctx context.Context, tableID, attachmentID string) error {
	_, err := c.api.DisassociateTransitGatewayRouteTable(ctx, &ec2.DisassociateTransitGatewayRouteTableInput{
		TransitGatewayRouteTableId: aws.String(tableID),
		TransitGatewayAttachmentId: aws.String(attachmentID),
	})
	if err != nil {
		return fmt.Errorf("failed to disassociate %s from %s: %w", attachmentID, tableID, err)
	}
	return nil
}
