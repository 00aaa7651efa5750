// Package topology owns the AS graph: node adjacency, provider-cycle
// checking, and propagation-rank assignment (spec.md §4.A, §4.B).
package topology

import (
	"sync"

	"github.com/riftgraph/asrov/policy"
	"github.com/riftgraph/asrov/routing"
)

// Node is one Autonomous System. The graph exclusively owns every Node;
// adjacency sets hold non-owning back references whose lifetime equals the
// graph's.
//
// The received queue and local RIB are mutated only through the exported
// Enqueue/DrainQueue/InstallIfBetter methods, which by convention are only
// ever called from package propagate, and through Seed, which the
// announcement seeder calls before propagation. Adjacency and Policy are
// mutated only during graph construction.
type Node struct {
	ASN       routing.ASN
	Providers map[routing.ASN]*Node
	Customers map[routing.ASN]*Node
	Peers     map[routing.ASN]*Node
	Policy    policy.Kind
	Rank      int

	mu            sync.Mutex
	receivedQueue map[string][]routing.Announcement
	localRIB      map[string]routing.Announcement
}

func newNode(asn routing.ASN) *Node {
	return &Node{
		ASN:           asn,
		Providers:     make(map[routing.ASN]*Node),
		Customers:     make(map[routing.ASN]*Node),
		Peers:         make(map[routing.ASN]*Node),
		Policy:        policy.BGP,
		receivedQueue: make(map[string][]routing.Announcement),
		localRIB:      make(map[string]routing.Announcement),
	}
}

// Enqueue appends a to n's received queue for a.Prefix. Safe for concurrent
// callers writing to the same node during a send sub-phase.
func (n *Node) Enqueue(a routing.Announcement) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receivedQueue[a.Prefix] = append(n.receivedQueue[a.Prefix], a)
}

// DrainQueue empties and returns n's entire received queue. Only the
// process sub-phase's single drainer per node calls this.
func (n *Node) DrainQueue() map[string][]routing.Announcement {
	n.mu.Lock()
	defer n.mu.Unlock()
	drained := n.receivedQueue
	n.receivedQueue = make(map[string][]routing.Announcement)
	return drained
}

// QueueLen reports how many prefixes currently have pending announcements,
// used by tests to assert invariant 4 (queue empty after propagation).
func (n *Node) QueueLen() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.receivedQueue)
}

// RIBEntry returns the installed announcement for prefix, if any.
func (n *Node) RIBEntry(prefix string) (routing.Announcement, bool) {
	a, ok := n.localRIB[prefix]
	return a, ok
}

// RIB returns a copy of the node's local RIB, keyed by prefix.
func (n *Node) RIB() map[string]routing.Announcement {
	out := make(map[string]routing.Announcement, len(n.localRIB))
	for k, v := range n.localRIB {
		out[k] = v
	}
	return out
}

// Seed installs a directly into n's local RIB, unconditionally. Used only
// at graph-construction time to place origin announcements, before
// propagation begins.
func (n *Node) Seed(a routing.Announcement) {
	n.localRIB[a.Prefix] = a
}

// InstallIfBetter compares candidate against the current RIB entry (if any)
// for candidate.Prefix using better, passing the current entry as the
// incumbent, and installs candidate when it wins. Returns true if the RIB
// was changed.
func (n *Node) InstallIfBetter(candidate routing.Announcement, better func(a, b routing.Announcement) routing.Announcement) bool {
	current, ok := n.localRIB[candidate.Prefix]
	if !ok {
		n.localRIB[candidate.Prefix] = candidate
		return true
	}
	winner := better(current, candidate)
	if winner.Equal(candidate) && !winner.Equal(current) {
		n.localRIB[candidate.Prefix] = candidate
		return true
	}
	return false
}
