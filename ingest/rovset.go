package ingest

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/riftgraph/asrov/policy"
	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/simerr"
	"github.com/riftgraph/asrov/topology"
)

// ApplyROVSetFile opens path and calls ApplyROVSet on it.
func ApplyROVSetFile(path string, g *topology.Graph, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return &simerr.InputOpenError{Path: path, Err: err}
	}
	defer f.Close()
	return ApplyROVSet(f, path, g, log)
}

// ApplyROVSet parses the ROV-AS list from spec.md §6: one ASN per line,
// with an optional non-digit header line skipped. Every ASN in the set is
// materialised (even if never mentioned in any relationship record) and
// marked ROV-adopting; a missing ASN is tolerated, not an error.
func ApplyROVSet(r io.Reader, sourceName string, g *topology.Graph, log *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		asn, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			if lineNo == 1 {
				continue // optional header line, not a digit-only line
			}
			warnMalformed(log, sourceName, lineNo, err.Error())
			continue
		}
		node := g.EnsureNode(routing.ASN(asn))
		node.Policy = policy.ROV
	}
	return scanner.Err()
}
