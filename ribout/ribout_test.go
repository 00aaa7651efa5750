package ribout

import (
	"strings"
	"testing"

	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_FormatsPathsPerSpec(t *testing.T) {
	g := topology.New()
	n := g.EnsureNode(64501)
	n.Seed(routing.Announcement{
		Prefix:       "1.2.0.0/16",
		ASPath:       []routing.ASN{64501, 64502, 64503},
		ReceivedFrom: routing.Customer,
	})

	solo := g.EnsureNode(1)
	solo.Seed(routing.Announcement{
		Prefix:       "10.0.0.0/8",
		ASPath:       []routing.ASN{1},
		ReceivedFrom: routing.Origin,
	})

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "asn,prefix,as_path")
	assert.Contains(t, out, `64501,1.2.0.0/16,"(64501, 64502, 64503)"`)
	assert.Contains(t, out, `1,10.0.0.0/8,"(1,)"`)
}
