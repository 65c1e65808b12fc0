package ec2

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Route table states as reported by the EC2 API.
const (
	RouteTableStateAvailable = string(types.TransitGatewayRouteTableStateAvailable)
	RouteTableStateDeleting  = string(types.TransitGatewayRouteTableStateDeleting)
)

// Association states as reported by the EC2 API.
const (
	AssociationStateAssociated     = string(types.TransitGatewayAssociationStateAssociated)
	AssociationStateDisassociated  = string(types.TransitGatewayAssociationStateDisassociated)
	AssociationStateDisassociating = string(types.TransitGatewayAssociationStateDisassociating)
)

// RouteTable is a transit gateway route table as seen on the control plane.
type RouteTable struct {
	ID               string `yaml:"route_table_id"`
	TransitGatewayID string `yaml:"transit_gateway_id"`
	State            string `yaml:"state"`
}

// Association links a route table to a transit gateway attachment.
type Association struct {
	AttachmentID string `yaml:"attachment_id"`
	ResourceID   string `yaml:"resource_id,omitempty"`
	ResourceType string `yaml:"resource_type,omitempty"`
	State        string `yaml:"state"`
}

// Route is a static route entry keyed by destination CIDR. AttachmentIDs
// carries every attachment the API reports for the entry; a static route
// has exactly one.
type Route struct {
	DestinationCIDR string   `yaml:"dest_cidr"`
	AttachmentIDs   []string `yaml:"attachment_ids"`
	State           string   `yaml:"state"`
	Type            string   `yaml:"type,omitempty"`
}

func routeTableFromSDK(t types.TransitGatewayRouteTable) RouteTable {
	return RouteTable{
		ID:               aws.ToString(t.TransitGatewayRouteTableId),
		TransitGatewayID: aws.ToString(t.TransitGatewayId),
		State:            string(t.State),
	}
}

func associationFromSDK(a types.TransitGatewayRouteTableAssociation) Association {
	return Association{
		AttachmentID: aws.ToString(a.TransitGatewayAttachmentId),
		ResourceID:   aws.ToString(a.ResourceId),
		ResourceType: string(a.ResourceType),
		State:        string(a.State),
	}
}

func routeFromSDK(r types.TransitGatewayRoute) Route {
	route := Route{
		DestinationCIDR: aws.ToString(r.DestinationCidrBlock),
		State:           string(r.State),
		Type:            string(r.Type),
	}
	for _, attachment := range r.TransitGatewayAttachments {
		route.AttachmentIDs = append(route.AttachmentIDs, aws.ToString(attachment.TransitGatewayAttachmentId))
	}
	return route
}

func tagsToMap(tags []types.TagDescription) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return out
}

func tagsFromMap(tags map[string]string) []types.Tag {
	out := make([]types.Tag, 0, len(tags))
	for key, value := range tags {
		out = append(out, types.Tag{Key: aws.String(key), Value: aws.String(value)})
	}
	return out
}
