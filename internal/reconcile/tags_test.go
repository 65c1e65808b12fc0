package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/tgwsync/internal/platform/ec2"
)

func seedTable(mock *ec2.MockClient, tags map[string]string) *ec2.RouteTable {
	return mock.AddTable(ec2.RouteTable{ID: "tgw-rtb-1", TransitGatewayID: "tgw-1"}, tags)
}

func TestReconcileTags_NoChange(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, map[string]string{"Name": "Public"})

	r := New(mock, false)
	changed, final, err := r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"Name": "Public"}, false)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, map[string]string{"Name": "Public"}, final)
	assert.Empty(t, mock.MutatingCalls)
}

func TestReconcileTags_AddAndUpdate(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, map[string]string{"Name": "Old", "Keep": "yes"})

	r := New(mock, false)
	changed, final, err := r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"Name": "New", "Extra": "added"}, false)

	require.NoError(t, err)
	assert.True(t, changed)
	// Without purge, untouched current tags survive and desired wins conflicts.
	assert.Equal(t, map[string]string{"Name": "New", "Keep": "yes", "Extra": "added"}, final)
}

func TestReconcileTags_PurgeRemovesStale(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, map[string]string{"Name": "Public", "Stale": "old"})

	r := New(mock, false)
	changed, final, err := r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"Name": "Public"}, true)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]string{"Name": "Public"}, final)
}

func TestReconcileTags_DeleteBeforeAdd(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, map[string]string{"Old": "v"})

	r := New(mock, false)
	changed, _, err := r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"New": "v"}, true)

	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, mock.MutatingCalls, 2)
	assert.Contains(t, mock.MutatingCalls[0], "RemoveTags")
	assert.Contains(t, mock.MutatingCalls[1], "AddTags")
}

func TestReconcileTags_DryRunProjection(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, map[string]string{"Keep": "yes", "Name": "Old"})

	r := New(mock, true)

	changed, projected, err := r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"Name": "New"}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]string{"Keep": "yes", "Name": "New"}, projected)
	assert.Empty(t, mock.MutatingCalls, "dry run must not mutate")

	changed, projected, err = r.reconcileTags(context.Background(), "tgw-rtb-1",
		map[string]string{"Name": "New"}, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]string{"Name": "New"}, projected)
	assert.Empty(t, mock.MutatingCalls)
}

func TestReconcileTags_FetchErrorPropagates(t *testing.T) {
	mock := ec2.NewMockClient()
	seedTable(mock, nil)
	mock.FailOn["GetTags"] = assert.AnError

	r := New(mock, false)
	_, _, err := r.reconcileTags(context.Background(), "tgw-rtb-1", map[string]string{"Name": "x"}, false)
	assert.ErrorIs(t, err, assert.AnError)
}
