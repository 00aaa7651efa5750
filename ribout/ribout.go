// Package ribout serialises the converged RIB state per spec.md §6.
package ribout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/riftgraph/asrov/simerr"
	"github.com/riftgraph/asrov/topology"
)

// WriteCSVFile creates path and calls WriteCSV on it, wrapping any create
// failure in simerr.OutputOpenError.
func WriteCSVFile(path string, g *topology.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return &simerr.OutputOpenError{Path: path, Err: err}
	}
	defer f.Close()
	return WriteCSV(f, g)
}

// WriteCSV writes the header "asn,prefix,as_path" followed by one line per
// (asn, prefix) pair present in any AS's local RIB, sorted by ASN then
// prefix for deterministic output.
func WriteCSV(w io.Writer, g *topology.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"asn", "prefix", "as_path"}); err != nil {
		return err
	}

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ASN < nodes[j].ASN })

	for _, n := range nodes {
		rib := n.RIB()
		prefixes := make([]string, 0, len(rib))
		for p := range rib {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)

		for _, prefix := range prefixes {
			a := rib[prefix]
			row := []string{
				fmt.Sprintf("%d", n.ASN),
				prefix,
				a.PathString(),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
