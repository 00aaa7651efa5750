// Package ingest holds the three input collaborators from spec.md §4.F:
// the CAIDA serial-2 relationship parser, the announcement CSV seeder, and
// the ROV-AS set loader. Each is a pure reader over an io.Reader plus a
// ...File(path, ...) convenience wrapper that maps open failures to
// simerr.InputOpenError.
package ingest

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/riftgraph/asrov/routing"
	"github.com/riftgraph/asrov/simerr"
	"github.com/riftgraph/asrov/topology"
)

// bzip2Magic is the three leading bytes of every bzip2 stream ("BZh").
var bzip2Magic = []byte("BZh")

// maybeDecompress peeks at the first three bytes of r and transparently
// wraps it in a bzip2 reader when they match the bzip2 magic, mirroring
// the corpus's own CAIDA reader (Emeline-1-anaximander_simulator's
// CompressedReader), which auto-detects compression the same way instead
// of requiring the caller to know the file's encoding up front.
func maybeDecompress(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peek, err := br.Peek(len(bzip2Magic))
	if err != nil || string(peek) != string(bzip2Magic) {
		return br
	}
	return bzip2.NewReader(br)
}

// RelationshipRecord is one parsed as-rel2 data line.
type RelationshipRecord struct {
	AS1, AS2 routing.ASN
	RelCode  int
}

// ReadRelationshipsFile opens path and calls ReadRelationships on it,
// wrapping any open failure in simerr.InputOpenError.
func ReadRelationshipsFile(path string, g *topology.Graph, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return &simerr.InputOpenError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadRelationships(f, path, g, log)
}

// ReadRelationships parses the CAIDA serial-2 as-rel2 format from spec.md
// §6 and feeds every valid record into g.AddRelationship. Malformed lines
// are logged and skipped; they are never fatal.
func ReadRelationships(r io.Reader, sourceName string, g *topology.Graph, log *slog.Logger) error {
	scanner := bufio.NewScanner(maybeDecompress(r))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			warnMalformed(log, sourceName, lineNo, "expected at least 3 |-separated fields")
			continue
		}
		as1, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			warnMalformed(log, sourceName, lineNo, fmt.Sprintf("invalid as1: %s", err))
			continue
		}
		as2, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			warnMalformed(log, sourceName, lineNo, fmt.Sprintf("invalid as2: %s", err))
			continue
		}
		rel, err := strconv.Atoi(fields[2])
		if err != nil {
			warnMalformed(log, sourceName, lineNo, fmt.Sprintf("invalid relationship code: %s", err))
			continue
		}
		g.AddRelationship(routing.ASN(as1), routing.ASN(as2), rel)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", sourceName, err)
	}
	return nil
}

func warnMalformed(log *slog.Logger, source string, line int, reason string) {
	rec := &simerr.MalformedRecord{Source: source, Line: line, Reason: reason}
	if log != nil {
		log.Warn(rec.Error())
	}
}
