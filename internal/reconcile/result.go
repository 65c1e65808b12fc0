package reconcile

import (
	"github.com/imamik/tgwsync/internal/platform/ec2"
)

// Snapshot is the observed route table state returned to the caller after
// reconciliation. ID duplicates RouteTableID for parity with earlier
// tooling that exposed both.
type Snapshot struct {
	ID               string            `yaml:"id"`
	RouteTableID     string            `yaml:"route_table_id"`
	TransitGatewayID string            `yaml:"transit_gateway_id"`
	State            string            `yaml:"state"`
	Associations     []ec2.Association `yaml:"associations"`
	Routes           []ec2.Route       `yaml:"routes"`
	Tags             map[string]string `yaml:"tags"`
}

// Result is the outcome of one reconciliation: whether anything changed and
// the final route table state. RouteTable is nil when the table does not
// exist (absent outcomes).
type Result struct {
	Changed    bool      `yaml:"changed"`
	RouteTable *Snapshot `yaml:"route_table,omitempty"`
}
