// Package policy implements the small tagged-variant capability set from
// spec.md §4.D: BGP accepts everything, ROV drops ROV-invalid announcements
// on ingress.
package policy

import "github.com/riftgraph/asrov/routing"

// Kind is a closed sum type; adding a new policy is a new case here, not a
// new type hierarchy.
type Kind int

const (
	BGP Kind = iota
	ROV
)

func (k Kind) String() string {
	if k == ROV {
		return "rov"
	}
	return "bgp"
}

// Decision is the outcome of consulting a policy on ingress.
type Decision int

const (
	Accept Decision = iota
	Drop
)

// OnReceive is consulted on every ingress announcement, before the loop
// check and the best-path selector.
func (k Kind) OnReceive(a routing.Announcement) Decision {
	switch k {
	case ROV:
		if a.ROVInvalid {
			return Drop
		}
		return Accept
	default:
		return Accept
	}
}
