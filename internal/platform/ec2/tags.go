package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// GetTags returns the tags of the resource, following pagination.
func (c *Client) GetTags(ctx context.Context, resourceID string) (map[string]string, error) {
	tags := make(map[string]string)
	var nextToken *string

	for {
		var out *ec2.DescribeTagsOutput
		err := c.withBackoff(ctx, func() error {
			var callErr error
			out, callErr = c.api.DescribeTags(ctx, &ec2.DescribeTagsInput{
				Filters: []types.Filter{{
					Name:   aws.String("resource-id"),
					Values: []string{resourceID},
				}},
				NextToken: nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tags for %s: %w", resourceID, err)
		}

		for key, value := range tagsToMap(out.Tags) {
			tags[key] = value
		}

		if out.NextToken == nil {
			return tags, nil
		}
		nextToken = out.NextToken
	}
}

// AddTags creates or overwrites tags on the resource.
func (c *Client) AddTags(ctx context.Context, resourceID string, tags map[string]string) error {
	if len(tags) == 0 {
		return nil
	}

	_, err := c.api.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags:      tagsFromMap(tags),
	})
	if err != nil {
		return fmt.Errorf("failed to create tags on %s: %w", resourceID, err)
	}
	return nil
}

// RemoveTags deletes the given tag keys from the resource regardless of
// their current values.
func (c *Client) RemoveTags(ctx context.Context, resourceID string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	tags := make([]types.Tag, 0, len(keys))
	for _, key := range keys {
		tags = append(tags, types.Tag{Key: aws.String(key)})
	}

	_, err := c.api.DeleteTags(ctx, &ec2.DeleteTagsInput{
		Resources: []string{resourceID},
		Tags:      tags,
	})
	if err != nil {
		return fmt.Errorf("failed to delete tags on %s: %w", resourceID, err)
	}
	return nil
}
