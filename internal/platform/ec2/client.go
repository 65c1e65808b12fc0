// Package ec2 provides a client for the EC2 transit gateway control plane.
//
// It wraps the subset of the EC2 API the reconciler needs behind the [API]
// interface: route table lifecycle, attachment associations, static routes,
// tags, and readiness pollers. [Client] is the real implementation;
// [MockClient] is an in-memory stand-in for tests.
package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/imamik/tgwsync/internal/config"
	"github.com/imamik/tgwsync/internal/retry"
)

// API is the surface of the transit gateway control plane the reconciler
// depends on. Describe and list operations report a missing resource as a
// nil result, never as an error.
type API interface {
	// DescribeRouteTable returns the route table with the given ID, or nil
	// if no such table exists.
	DescribeRouteTable(ctx context.Context, id string) (*RouteTable, error)

	// DescribeRouteTables returns every route table owned by the given
	// transit gateway.
	DescribeRouteTables(ctx context.Context, transitGatewayID string) ([]RouteTable, error)

	CreateRouteTable(ctx context.Context, transitGatewayID string) (*RouteTable, error)
	DeleteRouteTable(ctx context.Context, id string) error

	ListAssociations(ctx context.Context, tableID string) ([]Association, error)
	Associate(ctx context.Context, tableID, attachmentID string) error
	Disassociate(ctx context.Context, tableID, attachmentID string) error

	// ListActiveRoutes returns the routes in the active state, the set the
	// reconciler diffs against.
	ListActiveRoutes(ctx context.Context, tableID string) ([]Route, error)
	CreateRoute(ctx context.Context, tableID, destCIDR, attachmentID string) error
	DeleteRoute(ctx context.Context, tableID, destCIDR string) error

	GetTags(ctx context.Context, resourceID string) (map[string]string, error)
	AddTags(ctx context.Context, resourceID string, tags map[string]string) error
	RemoveTags(ctx context.Context, resourceID string, keys []string) error

	// Readiness pollers. Each polls until the condition holds or its
	// configured timeout elapses, in which case the error wraps
	// ErrWaitTimeout.
	WaitForRouteTable(ctx context.Context, id string) error
	WaitForAssociation(ctx context.Context, tableID, attachmentID string) error
	WaitForDisassociation(ctx context.Context, tableID, attachmentID string) error
	WaitForRoutes(ctx context.Context, tableID string, destCIDRs []string) error
}

// sdkAPI is the slice of *ec2.Client the wrapper calls. Kept as an
// interface so Client can be exercised against a scripted SDK in tests.
type sdkAPI interface {
	DescribeTransitGatewayRouteTables(ctx context.Context, params *ec2.DescribeTransitGatewayRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeTransitGatewayRouteTablesOutput, error)
	CreateTransitGatewayRouteTable(ctx context.Context, params *ec2.CreateTransitGatewayRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.CreateTransitGatewayRouteTableOutput, error)
	DeleteTransitGatewayRouteTable(ctx context.Context, params *ec2.DeleteTransitGatewayRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTransitGatewayRouteTableOutput, error)
	GetTransitGatewayRouteTableAssociations(ctx context.Context, params *ec2.GetTransitGatewayRouteTableAssociationsInput, optFns ...func(*ec2.Options)) (*ec2.GetTransitGatewayRouteTableAssociationsOutput, error)
	AssociateTransitGatewayRouteTable(ctx context.Context, params *ec2.AssociateTransitGatewayRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.AssociateTransitGatewayRouteTableOutput, error)
	DisassociateTransitGatewayRouteTable(ctx context.Context, params *ec2.DisassociateTransitGatewayRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.DisassociateTransitGatewayRouteTableOutput, error)
	SearchTransitGatewayRoutes(ctx context.Context, params *ec2.SearchTransitGatewayRoutesInput, optFns ...func(*ec2.Options)) (*ec2.SearchTransitGatewayRoutesOutput, error)
	CreateTransitGatewayRoute(ctx context.Context, params *ec2.CreateTransitGatewayRouteInput, optFns ...func(*ec2.Options)) (*ec2.CreateTransitGatewayRouteOutput, error)
	DeleteTransitGatewayRoute(ctx context.Context, params *ec2.DeleteTransitGatewayRouteInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTransitGatewayRouteOutput, error)
	DescribeTags(ctx context.Context, params *ec2.DescribeTagsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteTags(ctx context.Context, params *ec2.DeleteTagsInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error)
}

// Client implements API against the real EC2 service.
type Client struct {
	api      sdkAPI
	timeouts *config.Timeouts
}

var _ API = (*Client)(nil)

// NewClient creates a client for the given region. An empty region defers to
// the SDK's default resolution (environment, shared config). A non-empty
// endpoint points the client at an API-compatible test endpoint and switches
// to static credentials from the environment.
func NewClient(ctx context.Context, region, endpoint string, timeouts *config.Timeouts) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("tgwsync", "tgwsync", "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return NewFromAPI(client, timeouts), nil
}

// NewFromAPI wraps an already-constructed SDK client. Used by tests.
func NewFromAPI(api sdkAPI, timeouts *config.Timeouts) *Client {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	return &Client{api: api, timeouts: timeouts}
}

// withBackoff retries a read operation with exponential backoff. Errors the
// EC2 API marks as throttling are retried; everything else aborts.
func (c *Client) withBackoff(ctx context.Context, operation func() error) error {
	return retry.Do(ctx, func() error {
		if err := operation(); err != nil {
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}
