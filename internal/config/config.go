// Package config loads and validates the tgwsync spec file.
//
// The spec file is a YAML document describing the desired state of a single
// transit gateway route table: how to find it, whether it should exist, and
// the tags, attachment associations, and static routes it should carry.
package config

import (
	"fmt"
	"net"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Lookup modes for finding an existing route table.
const (
	LookupByTag = "tag"
	LookupByID  = "id"
)

// Desired existence states.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// DefaultSpecFile is the spec file name used when none is given.
const DefaultSpecFile = "tgwsync.yaml"

// RouteSpec is a single desired static route.
type RouteSpec struct {
	DestCIDR     string `mapstructure:"dest_cidr" yaml:"dest_cidr"`
	AttachmentID string `mapstructure:"attachment_id" yaml:"attachment_id"`
}

// Spec holds the desired state of one transit gateway route table.
//
// Tags, Associations and Routes distinguish nil (unmanaged, leave the
// remote state alone) from empty (converge to the empty set).
type Spec struct {
	Region   string `mapstructure:"region" yaml:"region,omitempty"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	Lookup           string `mapstructure:"lookup" yaml:"lookup"`
	RouteTableID     string `mapstructure:"route_table_id" yaml:"route_table_id,omitempty"`
	TransitGatewayID string `mapstructure:"transit_gateway_id" yaml:"transit_gateway_id,omitempty"`
	State            string `mapstructure:"state" yaml:"state"`

	Tags      map[string]string `mapstructure:"tags" yaml:"tags,omitempty"`
	PurgeTags bool              `mapstructure:"purge_tags" yaml:"purge_tags"`

	Associations []string    `mapstructure:"associations" yaml:"associations,omitempty"`
	Routes       []RouteSpec `mapstructure:"routes" yaml:"routes,omitempty"`
}

// LoadFile reads and parses the spec from a YAML file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var spec Spec
	if err := mapstructure.Decode(raw, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode spec: %w", err)
	}

	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// ApplyDefaults fills in the defaulted fields.
func (s *Spec) ApplyDefaults() {
	if s.Lookup == "" {
		s.Lookup = LookupByTag
	}
	if s.State == "" {
		s.State = StatePresent
	}
}

// Validate checks the spec for internal consistency. The rules mirror the
// requirements of the EC2 API: an ID lookup needs the ID, a tag lookup and
// any create both need the owning transit gateway.
func (s *Spec) Validate() error {
	switch s.Lookup {
	case LookupByTag, LookupByID:
	default:
		return fmt.Errorf("lookup must be %q or %q, got %q", LookupByTag, LookupByID, s.Lookup)
	}

	switch s.State {
	case StatePresent, StateAbsent:
	default:
		return fmt.Errorf("state must be %q or %q, got %q", StatePresent, StateAbsent, s.State)
	}

	if s.Lookup == LookupByID && s.RouteTableID == "" {
		return fmt.Errorf("route_table_id is required when lookup is %q", LookupByID)
	}
	if s.Lookup == LookupByTag && s.TransitGatewayID == "" {
		return fmt.Errorf("transit_gateway_id is required when lookup is %q", LookupByTag)
	}
	if s.State == StatePresent && s.TransitGatewayID == "" {
		return fmt.Errorf("transit_gateway_id is required when state is %q", StatePresent)
	}

	seen := make(map[string]bool, len(s.Routes))
	for i, route := range s.Routes {
		if route.DestCIDR == "" {
			return fmt.Errorf("routes[%d]: dest_cidr is required", i)
		}
		if route.AttachmentID == "" {
			return fmt.Errorf("routes[%d]: attachment_id is required", i)
		}
		if _, _, err := net.ParseCIDR(route.DestCIDR); err != nil {
			return fmt.Errorf("routes[%d]: invalid dest_cidr %q: %w", i, route.DestCIDR, err)
		}
		if seen[route.DestCIDR] {
			return fmt.Errorf("routes[%d]: duplicate dest_cidr %q", i, route.DestCIDR)
		}
		seen[route.DestCIDR] = true
	}

	return nil
}

// SaveFile writes the spec to a YAML file.
func SaveFile(s *Spec, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}
	return nil
}
