package topology

import (
	"testing"

	"github.com/riftgraph/asrov/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRelationship_MutualInverses(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, RelProvider) // 1 is provider of 2
	g.AddRelationship(3, 4, RelPeer)

	n1, _ := g.Node(1)
	n2, _ := g.Node(2)
	n3, _ := g.Node(3)
	n4, _ := g.Node(4)

	assert.Contains(t, n2.Providers, routing.ASN(1))
	assert.Contains(t, n1.Customers, routing.ASN(2))
	assert.Contains(t, n3.Peers, routing.ASN(4))
	assert.Contains(t, n4.Peers, routing.ASN(3))
}

func TestAddRelationship_IgnoresUnknownCode(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, 7)
	n1, ok := g.Node(1)
	require.True(t, ok) // node materialised even though the edge is dropped
	assert.Empty(t, n1.Providers)
	assert.Empty(t, n1.Customers)
	assert.Empty(t, n1.Peers)
}

func TestCheckCycles_DetectsCycle(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, RelProvider)
	g.AddRelationship(2, 3, RelProvider)
	g.AddRelationship(3, 1, RelProvider)

	err := g.CheckCycles()
	require.Error(t, err)
}

func TestCheckCycles_AcceptsDAG(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, RelProvider)
	g.AddRelationship(2, 3, RelProvider)
	g.AddRelationship(1, 3, RelProvider)

	require.NoError(t, g.CheckCycles())
}

func TestComputeRanks_Chain(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, RelProvider) // 1 provider of 2
	g.AddRelationship(2, 3, RelProvider) // 2 provider of 3
	require.NoError(t, g.CheckCycles())
	g.ComputeRanks()

	n1, _ := g.Node(1)
	n2, _ := g.Node(2)
	n3, _ := g.Node(3)

	assert.Equal(t, 0, n3.Rank)
	assert.Equal(t, 1, n2.Rank)
	assert.Equal(t, 2, n1.Rank)
}

func TestComputeRanks_ConsistentWithCustomers(t *testing.T) {
	g := New()
	g.AddRelationship(1, 2, RelProvider)
	g.AddRelationship(1, 3, RelProvider)
	g.AddRelationship(2, 4, RelProvider)
	require.NoError(t, g.CheckCycles())
	g.ComputeRanks()

	for _, n := range g.Nodes() {
		for _, c := range n.Customers {
			assert.Greater(t, n.Rank, c.Rank)
		}
	}
}
