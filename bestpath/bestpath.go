// Package bestpath implements the pure best-path comparator described in
// spec.md §4.C. It holds no state and is safe to call concurrently.
package bestpath

import "github.com/riftgraph/asrov/routing"

// Better returns whichever of a, b is preferred under the ordered rules:
//  1. higher local preference by relationship
//  2. shorter AS path
//  3. lower next-hop ASN
//
// If all three are equal, a (the incumbent) is returned, so repeated calls
// with the same pair in either order never both report the other as
// strictly better.
func Better(a, b routing.Announcement) routing.Announcement {
	if better(b, a) {
		return b
	}
	return a
}

// better reports whether candidate strictly beats incumbent.
func better(candidate, incumbent routing.Announcement) bool {
	cp, ip := candidate.ReceivedFrom.LocalPref(), incumbent.ReceivedFrom.LocalPref()
	if cp != ip {
		return cp > ip
	}
	if len(candidate.ASPath) != len(incumbent.ASPath) {
		return len(candidate.ASPath) < len(incumbent.ASPath)
	}
	if candidate.NextHopASN != incumbent.NextHopASN {
		return candidate.NextHopASN < incumbent.NextHopASN
	}
	return false
}
