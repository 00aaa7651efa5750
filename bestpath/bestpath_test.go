package bestpath

import (
	"testing"

	"github.com/riftgraph/asrov/routing"
	"github.com/stretchr/testify/assert"
)

func ann(rel routing.Relationship, path []routing.ASN, nh routing.ASN) routing.Announcement {
	return routing.Announcement{
		Prefix:       "1.2.0.0/16",
		ASPath:       path,
		NextHopASN:   nh,
		ReceivedFrom: rel,
	}
}

func TestBetter_LocalPrefWins(t *testing.T) {
	customer := ann(routing.Customer, []routing.ASN{2, 3}, 3)
	provider := ann(routing.Provider, []routing.ASN{2, 1}, 1)

	assert.Equal(t, customer, Better(provider, customer))
	assert.Equal(t, customer, Better(customer, provider))
}

func TestBetter_ShorterPathWins(t *testing.T) {
	short := ann(routing.Customer, []routing.ASN{2, 3}, 3)
	long := ann(routing.Customer, []routing.ASN{2, 4, 3}, 4)

	assert.Equal(t, short, Better(short, long))
	assert.Equal(t, short, Better(long, short))
}

func TestBetter_TieBreakLowestNextHop(t *testing.T) {
	viaOne := ann(routing.Customer, []routing.ASN{2, 1}, 1)
	viaThree := ann(routing.Customer, []routing.ASN{2, 3}, 3)

	assert.Equal(t, viaOne, Better(viaOne, viaThree))
	assert.Equal(t, viaOne, Better(viaThree, viaOne))
}

func TestBetter_AllEqualKeepsIncumbent(t *testing.T) {
	a := ann(routing.Customer, []routing.ASN{2, 1}, 1)
	b := ann(routing.Customer, []routing.ASN{2, 1}, 1)

	assert.Equal(t, a, Better(a, b))
	assert.Equal(t, b, Better(b, a))
}

func TestBetter_Commutative(t *testing.T) {
	pairs := [][2]routing.Announcement{
		{ann(routing.Origin, []routing.ASN{5}, 5), ann(routing.Customer, []routing.ASN{5, 9}, 9)},
		{ann(routing.Peer, []routing.ASN{5, 9}, 9), ann(routing.Provider, []routing.ASN{5, 2}, 2)},
	}
	for _, p := range pairs {
		ab := Better(p[0], p[1])
		ba := Better(p[1], p[0])
		// Whichever direction wins, the winner must be the same announcement.
		assert.True(t, ab.NextHopASN == ba.NextHopASN && ab.ReceivedFrom == ba.ReceivedFrom)
	}
}
