package topology

import (
	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/simerr"
)

// RelProvider and RelPeer are the two relationship codes accepted by
// AddRelationship, matching the CAIDA as-rel2 encoding from spec.md §6.
const (
	RelProvider = -1
	RelPeer     = 0
)

// Graph owns every AS node reachable from the relationship records it was
// built from. It lives for the whole simulation.
type Graph struct {
	nodes map[routing.ASN]*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[routing.ASN]*Node)}
}

// node returns the node for asn, materialising it lazily on first mention.
func (g *Graph) node(asn routing.ASN) *Node {
	n, ok := g.nodes[asn]
	if !ok {
		n = newNode(asn)
		g.nodes[asn] = n
	}
	return n
}

// Node returns the node for asn if it exists.
func (g *Graph) Node(asn routing.ASN) (*Node, bool) {
	n, ok := g.nodes[asn]
	return n, ok
}

// EnsureNode materialises asn if it hasn't been mentioned yet, and returns
// it. Used by the announcement seeder and the ROV-set loader, both of which
// may reference an AS no relationship record ever named.
func (g *Graph) EnsureNode(asn routing.ASN) *Node {
	return g.node(asn)
}

// Len returns the number of AS nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns every node in the graph, in no particular order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// AddRelationship records one as-rel2 data line. relCode -1 means as1 is a
// provider of as2; relCode 0 means as1 and as2 are peers. Other codes add
// no edge, matching spec.md §6. Both ASNs are materialised either way.
func (g *Graph) AddRelationship(as1, as2 routing.ASN, relCode int) {
	a := g.node(as1)
	b := g.node(as2)
	switch relCode {
	case RelProvider:
		b.Providers[a.ASN] = a
		a.Customers[b.ASN] = b
	case RelPeer:
		a.Peers[b.ASN] = b
		b.Peers[a.ASN] = a
	default:
		// ignored per spec.md §6
	}
}

// dfsColor is the three-way DFS colouring used by the provider-cycle check.
type dfsColor int

const (
	white dfsColor = iota
	gray
	black
)

// stackFrame is one entry of the explicit DFS stack: the node being
// visited and an iteration cursor into its provider set.
type stackFrame struct {
	node     *Node
	provIter []*Node
	idx      int
}

// CheckCycles walks the providers edge only, colouring nodes
// unvisited/on-stack/done. If the walk re-enters a node currently on the
// stack, the customer-provider relation is not a DAG and construction must
// abort before rank assignment or propagation. Implemented iteratively so a
// full CAIDA-sized graph doesn't blow the goroutine stack.
func (g *Graph) CheckCycles() error {
	color := make(map[routing.ASN]dfsColor, len(g.nodes))

	for _, start := range g.nodes {
		if color[start.ASN] != white {
			continue
		}
		if err := g.dfsFrom(start, color); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) dfsFrom(start *Node, color map[routing.ASN]dfsColor) error {
	stack := []*stackFrame{{node: start, provIter: providerSlice(start)}}
	color[start.ASN] = gray

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx >= len(top.provIter) {
			color[top.node.ASN] = black
			stack = stack[:len(stack)-1]
			continue
		}
		next := top.provIter[top.idx]
		top.idx++

		switch color[next.ASN] {
		case white:
			color[next.ASN] = gray
			stack = append(stack, &stackFrame{node: next, provIter: providerSlice(next)})
		case gray:
			return &simerr.TopologyCycle{ASN: uint32(next.ASN)}
		case black:
			// already fully explored, safe to skip
		}
	}
	return nil
}

func providerSlice(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Providers))
	for _, p := range n.Providers {
		out = append(out, p)
	}
	return out
}

// ComputeRanks performs a Kahn-style topological sweep over the
// customer-provider DAG: every AS with no customers gets rank 0, every
// other AS gets rank 1 + max(rank of its customers). Must be called after
// CheckCycles has returned nil: nodes on a cycle, and every node above one,
// are never reached by the sweep and keep whatever Rank they already had.
func (g *Graph) ComputeRanks() {
	remaining := make(map[routing.ASN]int, len(g.nodes))
	best := make(map[routing.ASN]int, len(g.nodes))
	queue := make([]*Node, 0, len(g.nodes))

	for _, n := range g.nodes {
		remaining[n.ASN] = len(n.Customers)
		if len(n.Customers) == 0 {
			n.Rank = 0
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, provider := range n.Providers {
			if r := n.Rank + 1; r > best[provider.ASN] {
				best[provider.ASN] = r
			}
			remaining[provider.ASN]--
			if remaining[provider.ASN] == 0 {
				provider.Rank = best[provider.ASN]
				queue = append(queue, provider)
			}
		}
	}
}

// MaxRank returns the highest rank assigned to any node, or 0 for an empty
// graph. Callers must call this only after ComputeRanks.
func (g *Graph) MaxRank() int {
	max := 0
	for _, n := range g.nodes {
		if n.Rank > max {
			max = n.Rank
		}
	}
	return max
}

// ByRank groups every node by its Rank, from 0 up to MaxRank inclusive.
func (g *Graph) ByRank() [][]*Node {
	layers := make([][]*Node, g.MaxRank()+1)
	for _, n := range g.nodes {
		layers[n.Rank] = append(layers[n.Rank], n)
	}
	return layers
}
