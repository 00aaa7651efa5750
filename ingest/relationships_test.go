package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRelationships_SkipsCommentsAndTrailingFields(t *testing.T) {
	input := "# comment\n1|2|-1|source\n3|4|0\nbad line\n"
	g := topology.New()
	require.NoError(t, ReadRelationships(strings.NewReader(input), "test", g, nil))

	n1, _ := g.Node(1)
	n2, _ := g.Node(2)
	assert.Contains(t, n2.Providers, routing.ASN(1))
	assert.Contains(t, n1.Customers, routing.ASN(2))

	n3, _ := g.Node(3)
	n4, _ := g.Node(4)
	assert.Contains(t, n3.Peers, routing.ASN(4))
	assert.Contains(t, n4.Peers, routing.ASN(3))
}

func TestReadRelationships_IgnoresUnknownCode(t *testing.T) {
	g := topology.New()
	require.NoError(t, ReadRelationships(strings.NewReader("1|2|5\n"), "test", g, nil))
	n1, ok := g.Node(1)
	require.True(t, ok)
	assert.Empty(t, n1.Providers)
}

// compress/bzip2 is decode-only in the stdlib, so no compressed fixture is
// built here; this test feeds a plain (uncompressed) stream instead, which
// exercises the maybeDecompress path taken when the magic doesn't match.
func TestReadRelationships_PlainStreamBypassesDecompression(t *testing.T) {
	g := topology.New()
	require.NoError(t, ReadRelationships(strings.NewReader("1|2|-1\n"), "test", g, nil))
	_, ok := g.Node(1)
	assert.True(t, ok)
}

func TestMaybeDecompress_DetectsBzip2Magic(t *testing.T) {
	// A minimal reader that starts with the bzip2 magic but isn't a full
	// valid stream; maybeDecompress only needs to recognise the magic and
	// hand off to bzip2.NewReader. We can't type-assert the unexported
	// *bzip2.reader, so instead confirm the returned reader is no longer
	// the plain bufio.Reader by checking a bogus stream now fails to
	// scan as the raw "BZh" bytes it would if decompression weren't applied.
	var buf bytes.Buffer
	buf.WriteString("BZh")
	r := maybeDecompress(&buf)
	b := make([]byte, 3)
	n, err := r.Read(b)
	if err == nil {
		assert.NotEqual(t, "BZh", string(b[:n]))
	}
}
