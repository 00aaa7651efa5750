package routing

import "fmt"

// ASN is an Autonomous System Number.
type ASN uint32

// Announcement binds a prefix to the AS path that carried it to the
// receiver. ASPath's leftmost element is the most recent hop; the
// rightmost element is the origin AS.
type Announcement struct {
	Prefix       string
	ASPath       []ASN
	NextHopASN   ASN
	ReceivedFrom Relationship
	ROVInvalid   bool
}

// Origin returns the rightmost (origin) ASN of the path.
func (a Announcement) Origin() ASN {
	return a.ASPath[len(a.ASPath)-1]
}

// Contains reports whether asn already appears anywhere in the AS path,
// which is the loop check applied before an announcement is installed.
func (a Announcement) Contains(asn ASN) bool {
	for _, hop := range a.ASPath {
		if hop == asn {
			return true
		}
	}
	return false
}

// Prepend returns a copy of a with asn pushed onto the front of the path,
// as done when a receiving AS installs an announcement into its own RIB.
// NextHopASN is left untouched: it was already stamped by whichever
// neighbor forwarded a to the receiver (see Export).
func (a Announcement) Prepend(asn ASN) Announcement {
	path := make([]ASN, 0, len(a.ASPath)+1)
	path = append(path, asn)
	path = append(path, a.ASPath...)
	a.ASPath = path
	return a
}

// Export returns a copy of a suitable for pushing into a neighbor's
// received queue: tagged with rel (the relationship the neighbor will see
// it as arriving from) and NextHopASN stamped to sender, the ASN of the AS
// doing the forwarding. Per spec.md's documented open-question resolution,
// next_hop_asn is overwritten by the sender on every forward, so a later
// selector's tie-break compares the last-hop sender, not the origin.
func (a Announcement) Export(rel Relationship, sender ASN) Announcement {
	a.ReceivedFrom = rel
	a.NextHopASN = sender
	return a
}

// Validate checks the seed-time invariant from the data model: a non-empty
// path whose rightmost element is the claimed origin.
func (a Announcement) Validate(seedASN ASN) error {
	if len(a.ASPath) == 0 {
		return fmt.Errorf("announcement for prefix %q has empty as_path", a.Prefix)
	}
	if a.Origin() != seedASN {
		return fmt.Errorf("announcement for prefix %q: origin mismatch, path origin %d != seed %d",
			a.Prefix, a.Origin(), seedASN)
	}
	return nil
}

// Equal reports whether a and b represent the same announcement: same
// prefix, path, next hop, source relationship and ROV flag.
func (a Announcement) Equal(b Announcement) bool {
	if a.Prefix != b.Prefix || a.NextHopASN != b.NextHopASN ||
		a.ReceivedFrom != b.ReceivedFrom || a.ROVInvalid != b.ROVInvalid {
		return false
	}
	if len(a.ASPath) != len(b.ASPath) {
		return false
	}
	for i := range a.ASPath {
		if a.ASPath[i] != b.ASPath[i] {
			return false
		}
	}
	return true
}

// PathString renders the AS path as spec.md's ribs.csv column: a
// parenthesised, comma-separated list, receiver first and origin last, with
// a trailing comma for a single-element path.
func (a Announcement) PathString() string {
	if len(a.ASPath) == 1 {
		return fmt.Sprintf("(%d,)", a.ASPath[0])
	}
	s := "("
	for i, hop := range a.ASPath {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", hop)
	}
	s += ")"
	return s
}
