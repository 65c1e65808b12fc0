package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/tgwsync/internal/config"
	"github.com/imamik/tgwsync/internal/platform/ec2"
)

func fullSpec() *config.Spec {
	return &config.Spec{
		Lookup:           config.LookupByTag,
		TransitGatewayID: "tgw-1",
		State:            config.StatePresent,
		Tags:             map[string]string{"Name": "Public"},
		Associations:     []string{"tgw-attach-A", "tgw-attach-B"},
		Routes: []config.RouteSpec{
			{DestCIDR: "10.2.0.0/16", AttachmentID: "tgw-attach-A"},
			{DestCIDR: "10.3.0.0/16", AttachmentID: "tgw-attach-B"},
		},
	}
}

func TestEnsurePresent_CreatesEverythingFromScratch(t *testing.T) {
	mock := ec2.NewMockClient()
	r := New(mock, false)

	result, err := r.EnsurePresent(context.Background(), fullSpec())
	require.NoError(t, err)

	assert.True(t, result.Changed)
	require.NotNil(t, result.RouteTable)
	assert.Equal(t, "tgw-1", result.RouteTable.TransitGatewayID)
	assert.Equal(t, result.RouteTable.ID, result.RouteTable.RouteTableID)
	assert.Equal(t, map[string]string{"Name": "Public"}, result.RouteTable.Tags)

	var attachments []string
	for _, association := range result.RouteTable.Associations {
		attachments = append(attachments, association.AttachmentID)
	}
	assert.ElementsMatch(t, []string{"tgw-attach-A", "tgw-attach-B"}, attachments)

	var cidrs []string
	for _, route := range result.RouteTable.Routes {
		cidrs = append(cidrs, route.DestinationCIDR)
	}
	assert.ElementsMatch(t, []string{"10.2.0.0/16", "10.3.0.0/16"}, cidrs)
}

func TestEnsurePresent_SecondRunIsIdempotent(t *testing.T) {
	mock := ec2.NewMockClient()
	r := New(mock, false)
	spec := fullSpec()

	first, err := r.EnsurePresent(context.Background(), spec)
	require.NoError(t, err)
	require.True(t, first.Changed)

	mock.MutatingCalls = nil

	second, err := r.EnsurePresent(context.Background(), spec)
	require.NoError(t, err)

	assert.False(t, second.Changed)
	assert.Empty(t, mock.MutatingCalls, "idempotent re-run must not issue mutating calls")
	assert.Equal(t, first.RouteTable.ID, second.RouteTable.ID)
}

func TestEnsurePresent_ConvergesExistingTable(t *testing.T) {
	mock := ec2.NewMockClient()
	table := mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public", "Stale": "x"})
	require.NoError(t, mock.Associate(context.Background(), table.ID, "tgw-attach-OLD"))
	require.NoError(t, mock.CreateRoute(context.Background(), table.ID, "10.9.0.0/16", "tgw-attach-OLD"))
	mock.MutatingCalls = nil

	spec := fullSpec()
	spec.PurgeTags = true

	r := New(mock, false)
	result, err := r.EnsurePresent(context.Background(), spec)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, table.ID, result.RouteTable.ID, "existing table is reused, not recreated")
	assert.Equal(t, map[string]string{"Name": "Public"}, result.RouteTable.Tags)

	var attachments []string
	for _, association := range result.RouteTable.Associations {
		attachments = append(attachments, association.AttachmentID)
	}
	assert.ElementsMatch(t, []string{"tgw-attach-A", "tgw-attach-B"}, attachments)

	var cidrs []string
	for _, route := range result.RouteTable.Routes {
		cidrs = append(cidrs, route.DestinationCIDR)
	}
	assert.ElementsMatch(t, []string{"10.2.0.0/16", "10.3.0.0/16"}, cidrs)
}

func TestEnsurePresent_UnmanagedSectionsLeftAlone(t *testing.T) {
	mock := ec2.NewMockClient()
	table := mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public"})
	require.NoError(t, mock.Associate(context.Background(), table.ID, "tgw-attach-OLD"))
	mock.MutatingCalls = nil

	spec := &config.Spec{
		Lookup:           config.LookupByTag,
		TransitGatewayID: "tgw-1",
		State:            config.StatePresent,
		Tags:             map[string]string{"Name": "Public"},
		// Associations and Routes nil: unmanaged.
	}

	r := New(mock, false)
	result, err := r.EnsurePresent(context.Background(), spec)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Empty(t, mock.MutatingCalls)
	require.Len(t, result.RouteTable.Associations, 1)
	assert.Equal(t, "tgw-attach-OLD", result.RouteTable.Associations[0].AttachmentID)
}

func TestEnsurePresent_DryRunOnMissingTable(t *testing.T) {
	mock := ec2.NewMockClient()
	r := New(mock, true)

	result, err := r.EnsurePresent(context.Background(), fullSpec())
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Empty(t, mock.MutatingCalls)
	require.NotNil(t, result.RouteTable)
	assert.Equal(t, "tgw-1", result.RouteTable.TransitGatewayID)
	assert.Len(t, result.RouteTable.Routes, 2)
}

func TestEnsurePresent_DryRunOnExistingTable(t *testing.T) {
	mock := ec2.NewMockClient()
	mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public", "Old": "v"})

	spec := fullSpec()
	spec.PurgeTags = true

	r := New(mock, true)
	result, err := r.EnsurePresent(context.Background(), spec)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Empty(t, mock.MutatingCalls, "dry run must never mutate")
	assert.Equal(t, map[string]string{"Name": "Public"}, result.RouteTable.Tags,
		"snapshot carries the projected tag set")
}

func TestEnsurePresent_AmbiguousLookupFailsInLookupPhase(t *testing.T) {
	mock := ec2.NewMockClient()
	mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public"})
	mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public"})

	r := New(mock, false)
	_, err := r.EnsurePresent(context.Background(), fullSpec())

	require.ErrorIs(t, err, ErrAmbiguousMatch)
	var phase *PhaseError
	require.ErrorAs(t, err, &phase)
	assert.Equal(t, PhaseLookup, phase.Phase)
}

func TestEnsurePresent_AssociationFailureNamesPhase(t *testing.T) {
	mock := ec2.NewMockClient()
	mock.FailOn["Associate"] = errors.New("attachment busy")

	r := New(mock, false)
	_, err := r.EnsurePresent(context.Background(), fullSpec())

	var phase *PhaseError
	require.ErrorAs(t, err, &phase)
	assert.Equal(t, PhaseAssociations, phase.Phase)
}

func TestEnsurePresent_CreateFailureNamesPhase(t *testing.T) {
	mock := ec2.NewMockClient()
	mock.FailOn["CreateRouteTable"] = errors.New("limit exceeded")

	r := New(mock, false)
	_, err := r.EnsurePresent(context.Background(), fullSpec())

	var phase *PhaseError
	require.ErrorAs(t, err, &phase)
	assert.Equal(t, PhaseCreate, phase.Phase)
}

func TestEnsureAbsent_NoMatchIsUnchanged(t *testing.T) {
	mock := ec2.NewMockClient()

	r := New(mock, false)
	result, err := r.EnsureAbsent(context.Background(), fullSpec())

	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, mock.MutatingCalls)
}

func TestEnsureAbsent_DisassociatesBeforeDelete(t *testing.T) {
	mock := ec2.NewMockClient()
	table := mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public"})
	require.NoError(t, mock.Associate(context.Background(), table.ID, "tgw-attach-A"))
	mock.MutatingCalls = nil

	r := New(mock, false)
	result, err := r.EnsureAbsent(context.Background(), fullSpec())
	require.NoError(t, err)

	assert.True(t, result.Changed)
	// The mock refuses to delete a table with live associations, so order
	// is proven by success alone; assert it anyway.
	require.Len(t, mock.MutatingCalls, 2)
	assert.Contains(t, mock.MutatingCalls[0], "Disassociate")
	assert.Contains(t, mock.MutatingCalls[1], "DeleteRouteTable")
	assert.Empty(t, mock.Tables)
}

func TestEnsureAbsent_ByID(t *testing.T) {
	mock := ec2.NewMockClient()
	table := mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, nil)

	r := New(mock, false)
	result, err := r.EnsureAbsent(context.Background(), &config.Spec{
		Lookup:       config.LookupByID,
		RouteTableID: table.ID,
		State:        config.StateAbsent,
	})

	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, mock.Tables)
}

func TestEnsureAbsent_DryRun(t *testing.T) {
	mock := ec2.NewMockClient()
	mock.AddTable(ec2.RouteTable{TransitGatewayID: "tgw-1"}, map[string]string{"Name": "Public"})

	r := New(mock, true)
	result, err := r.EnsureAbsent(context.Background(), fullSpec())

	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, mock.MutatingCalls)
	assert.Len(t, mock.Tables, 1, "table must survive a dry-run delete")
}

func TestRun_DispatchesOnState(t *testing.T) {
	mock := ec2.NewMockClient()
	r := New(mock, false)

	spec := fullSpec()
	result, err := r.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	spec.State = config.StateAbsent
	result, err = r.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, mock.Tables)
}
