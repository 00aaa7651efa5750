// Package propagate implements the three-phase UP -> ACROSS -> DOWN
// valley-free flood over a ranked AS graph (spec.md §4.E). It is the only
// package that mutates a topology.Node's received queue and local RIB.
package propagate

import (
	"log/slog"

	"github.com/riftgraph/asrov/bestpath"
	"github.com/riftgraph/asrov/policy"
	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/topology"
	"golang.org/x/sync/errgroup"
)

// process drains n's received queue, applying policy, the AS-path loop
// check, and the best-path selector, in that order, for every queued
// announcement. It returns the number of RIB entries changed.
func process(n *topology.Node, log *slog.Logger) int {
	changed := 0
	queue := n.DrainQueue()
	for _, anns := range queue {
		for _, a := range anns {
			if n.Policy.OnReceive(a) != policy.Accept {
				if log != nil {
					log.Debug("policy dropped announcement", "asn", n.ASN, "prefix", a.Prefix, "policy", n.Policy)
				}
				continue
			}
			if a.Contains(n.ASN) {
				if log != nil {
					log.Debug("loop dropped announcement", "asn", n.ASN, "prefix", a.Prefix)
				}
				continue // AS-path loop, drop before the selector is consulted
			}
			installed := a.Prepend(n.ASN)
			if n.InstallIfBetter(installed, bestpath.Better) {
				changed++
			}
		}
	}
	return changed
}

// sendUp exports every RIB entry learned from Origin or Customer to n's
// providers, tagged Customer, since n is the customer relative to them.
func sendUp(n *topology.Node) {
	for _, a := range n.RIB() {
		if a.ReceivedFrom != routing.Origin && a.ReceivedFrom != routing.Customer {
			continue
		}
		for _, provider := range n.Providers {
			provider.Enqueue(a.Export(routing.Customer, n.ASN))
		}
	}
}

// sendAcrossToPeers exports every RIB entry learned from Origin or Customer
// to each of n's peers, tagged Peer. Peer announcements are single-hop:
// a peer-learned route is never sent to another peer or to a provider; the
// DOWN phase passes it on to customers only.
func sendAcrossToPeers(n *topology.Node) {
	for _, a := range n.RIB() {
		if a.ReceivedFrom != routing.Origin && a.ReceivedFrom != routing.Customer {
			continue
		}
		for _, peer := range n.Peers {
			peer.Enqueue(a.Export(routing.Peer, n.ASN))
		}
	}
}

// sendDown exports every RIB entry to n's customers, tagged Provider. All
// RIB entries are eligible for DOWN export.
func sendDown(n *topology.Node) {
	for _, a := range n.RIB() {
		for _, customer := range n.Customers {
			customer.Enqueue(a.Export(routing.Provider, n.ASN))
		}
	}
}

// Run executes one UP/ACROSS/DOWN sweep over g, parallelizing the
// process and send sub-phases across every AS within a rank using
// errgroup, per spec.md §5: all processing at rank r completes before any
// send from rank r begins, and vice versa.
func Run(g *topology.Graph, log *slog.Logger) error {
	layers := g.ByRank()

	// Phase UP: rank 0 upward.
	for r := 0; r < len(layers); r++ {
		if err := processLayer(layers[r], log); err != nil {
			return err
		}
		if err := forEach(layers[r], func(n *topology.Node) error {
			sendUp(n)
			return nil
		}); err != nil {
			return err
		}
	}

	// Phase ACROSS: single hop over peers, two passes over all ASes.
	all := g.Nodes()
	if err := forEach(all, func(n *topology.Node) error {
		sendAcrossToPeers(n)
		return nil
	}); err != nil {
		return err
	}
	if err := forEach(all, func(n *topology.Node) error {
		process(n, log)
		return nil
	}); err != nil {
		return err
	}

	// Phase DOWN: rank max downward.
	for r := len(layers) - 1; r >= 0; r-- {
		if err := processLayer(layers[r], log); err != nil {
			return err
		}
		if err := forEach(layers[r], func(n *topology.Node) error {
			sendDown(n)
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func processLayer(layer []*topology.Node, log *slog.Logger) error {
	return forEach(layer, func(n *topology.Node) error {
		process(n, log)
		return nil
	})
}

// forEach runs fn over every node in nodes concurrently, using an errgroup
// as the barrier between sub-phases required by spec.md §5.
func forEach(nodes []*topology.Node, fn func(*topology.Node) error) error {
	var eg errgroup.Group
	for _, n := range nodes {
		n := n
		eg.Go(func() error {
			return fn(n)
		})
	}
	return eg.Wait()
}

// RunSequential is a single-goroutine reference implementation of Run,
// used by tests that want deterministic step-by-step execution.
func RunSequential(g *topology.Graph, log *slog.Logger) error {
	layers := g.ByRank()

	for r := 0; r < len(layers); r++ {
		for _, n := range layers[r] {
			process(n, log)
		}
		for _, n := range layers[r] {
			sendUp(n)
		}
	}

	all := g.Nodes()
	for _, n := range all {
		sendAcrossToPeers(n)
	}
	for _, n := range all {
		process(n, log)
	}

	for r := len(layers) - 1; r >= 0; r-- {
		for _, n := range layers[r] {
			process(n, log)
		}
		for _, n := range layers[r] {
			sendDown(n)
		}
	}

	return nil
}
