package ec2

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MockClient is an in-memory API implementation for tests. Every mutating
// call is recorded in MutatingCalls so tests can assert on exactly which
// writes happened (or that none did). FailOn injects an error for a single
// method by name.
type MockClient struct {
	mu sync.Mutex

	Tables       map[string]*RouteTable
	Associations map[string][]Association
	Routes       map[string]map[string]Route // tableID -> destination CIDR
	Tags         map[string]map[string]string

	MutatingCalls []string
	FailOn        map[string]error

	nextID int
}

var _ API = (*MockClient)(nil)

// NewMockClient returns an empty mock control plane.
func NewMockClient() *MockClient {
	return &MockClient{
		Tables:       make(map[string]*RouteTable),
		Associations: make(map[string][]Association),
		Routes:       make(map[string]map[string]Route),
		Tags:         make(map[string]map[string]string),
		FailOn:       make(map[string]error),
		nextID:       1,
	}
}

// AddTable seeds a route table with tags into the mock state.
func (m *MockClient) AddTable(table RouteTable, tags map[string]string) *RouteTable {
	m.mu.Lock()
	defer m.mu.Unlock()

	if table.ID == "" {
		table.ID = m.newID()
	}
	if table.State == "" {
		table.State = RouteTableStateAvailable
	}
	m.Tables[table.ID] = &table
	if tags == nil {
		tags = map[string]string{}
	}
	m.Tags[table.ID] = tags
	return &table
}

func (m *MockClient) newID() string {
	id := fmt.Sprintf("tgw-rtb-%08d", m.nextID)
	m.nextID++
	return id
}

func (m *MockClient) fail(method string) error {
	return m.FailOn[method]
}

func (m *MockClient) record(format string, args ...any) {
	m.MutatingCalls = append(m.MutatingCalls, fmt.Sprintf(format, args...))
}

func (m *MockClient) DescribeRouteTable(_ context.Context, id string) (*RouteTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DescribeRouteTable"); err != nil {
		return nil, err
	}
	table, ok := m.Tables[id]
	if !ok {
		return nil, nil
	}
	copied := *table
	return &copied, nil
}

func (m *MockClient) DescribeRouteTables(_ context.Context, transitGatewayID string) ([]RouteTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DescribeRouteTables"); err != nil {
		return nil, err
	}

	var ids []string
	for id, table := range m.Tables {
		if table.TransitGatewayID == transitGatewayID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	tables := make([]RouteTable, 0, len(ids))
	for _, id := range ids {
		tables = append(tables, *m.Tables[id])
	}
	return tables, nil
}

func (m *MockClient) CreateRouteTable(_ context.Context, transitGatewayID string) (*RouteTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateRouteTable"); err != nil {
		return nil, err
	}

	table := &RouteTable{
		ID:               m.newID(),
		TransitGatewayID: transitGatewayID,
		State:            RouteTableStateAvailable,
	}
	m.Tables[table.ID] = table
	m.Tags[table.ID] = map[string]string{}
	m.record("CreateRouteTable %s", transitGatewayID)

	copied := *table
	return &copied, nil
}

func (m *MockClient) DeleteRouteTable(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteRouteTable"); err != nil {
		return err
	}

	if len(m.Associations[id]) > 0 {
		return fmt.Errorf("route table %s still has associations", id)
	}

	delete(m.Tables, id)
	delete(m.Tags, id)
	delete(m.Routes, id)
	m.record("DeleteRouteTable %s", id)
	return nil
}

func (m *MockClient) ListAssociations(_ context.Context, tableID string) ([]Association, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListAssociations"); err != nil {
		return nil, err
	}
	return append([]Association(nil), m.Associations[tableID]...), nil
}

func (m *MockClient) Associate(_ context.Context, tableID, attachmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Associate"); err != nil {
		return err
	}

	m.Associations[tableID] = append(m.Associations[tableID], Association{
		AttachmentID: attachmentID,
		State:        AssociationStateAssociated,
	})
	m.record("Associate %s %s", tableID, attachmentID)
	return nil
}

func (m *MockClient) Disassociate(_ context.Context, tableID, attachmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Disassociate"); err != nil {
		return err
	}

	kept := m.Associations[tableID][:0]
	for _, association := range m.Associations[tableID] {
		if association.AttachmentID != attachmentID {
			kept = append(kept, association)
		}
	}
	m.Associations[tableID] = kept
	m.record("Disassociate %s %s", tableID, attachmentID)
	return nil
}

func (m *MockClient) ListActiveRoutes(_ context.Context, tableID string) ([]Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListActiveRoutes"); err != nil {
		return nil, err
	}

	var cidrs []string
	for cidr := range m.Routes[tableID] {
		cidrs = append(cidrs, cidr)
	}
	sort.Strings(cidrs)

	routes := make([]Route, 0, len(cidrs))
	for _, cidr := range cidrs {
		routes = append(routes, m.Routes[tableID][cidr])
	}
	return routes, nil
}

func (m *MockClient) CreateRoute(_ context.Context, tableID, destCIDR, attachmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateRoute"); err != nil {
		return err
	}

	if m.Routes[tableID] == nil {
		m.Routes[tableID] = make(map[string]Route)
	}
	m.Routes[tableID][destCIDR] = Route{
		DestinationCIDR: destCIDR,
		AttachmentIDs:   []string{attachmentID},
		State:           "active",
		Type:            "static",
	}
	m.record("CreateRoute %s %s %s", tableID, destCIDR, attachmentID)
	return nil
}

func (m *MockClient) DeleteRoute(_ context.Context, tableID, destCIDR string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteRoute"); err != nil {
		return err
	}

	delete(m.Routes[tableID], destCIDR)
	m.record("DeleteRoute %s %s", tableID, destCIDR)
	return nil
}

func (m *MockClient) GetTags(_ context.Context, resourceID string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetTags"); err != nil {
		return nil, err
	}

	tags := make(map[string]string, len(m.Tags[resourceID]))
	for key, value := range m.Tags[resourceID] {
		tags[key] = value
	}
	return tags, nil
}

func (m *MockClient) AddTags(_ context.Context, resourceID string, tags map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddTags"); err != nil {
		return err
	}

	if m.Tags[resourceID] == nil {
		m.Tags[resourceID] = make(map[string]string)
	}
	for key, value := range tags {
		m.Tags[resourceID][key] = value
	}
	m.record("AddTags %s %v", resourceID, sortedKeys(tags))
	return nil
}

func (m *MockClient) RemoveTags(_ context.Context, resourceID string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("RemoveTags"); err != nil {
		return err
	}

	for _, key := range keys {
		delete(m.Tags[resourceID], key)
	}
	m.record("RemoveTags %s %v", resourceID, keys)
	return nil
}

// The mock control plane settles instantly, so the pollers only surface
// injected failures.

func (m *MockClient) WaitForRouteTable(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("WaitForRouteTable")
}

func (m *MockClient) WaitForAssociation(_ context.Context, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("WaitForAssociation")
}

func (m *MockClient) WaitForDisassociation(_ context.Context, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("WaitForDisassociation")
}

func (m *MockClient) WaitForRoutes(_ context.Context, _ string, _ []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("WaitForRoutes")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
