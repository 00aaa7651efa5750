package ingest

import (
	"encoding/csv"
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

// SeedAnnouncementsFile opens path and calls SeedAnnouncements on it.
func SeedAnnouncementsFile(path string, g *topology.Graph, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return &simerr.InputOpenError{Path: path, Err: err}
	}
	defer f.Close()
	return SeedAnnouncements(f, path, g, log)
}

// SeedAnnouncements parses the announcements CSV from spec.md §6
// (columns seed_asn,prefix,rov_invalid) and installs one Origin
// announcement per valid row directly into the originating AS's local
// RIB, materialising the AS if it hasn't been mentioned in any
// relationship record.
func SeedAnnouncements(r io.Reader, sourceName string, g *topology.Graph, log *slog.Logger) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s header: %w", sourceName, err)
	}
	cols := indexColumns(header, "seed_asn", "prefix", "rov_invalid")

	lineNo := 1
	for {
		lineNo++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnMalformed(log, sourceName, lineNo, err.Error())
			continue
		}
		if cols.seedASN >= len(record) || cols.prefix >= len(record) || cols.rovInvalid >= len(record) {
			warnMalformed(log, sourceName, lineNo, "row shorter than header")
			continue
		}

		asn, err := strconv.ParseUint(strings.TrimSpace(record[cols.seedASN]), 10, 32)
		if err != nil {
			warnMalformed(log, sourceName, lineNo, fmt.Sprintf("invalid seed_asn: %s", err))
			continue
		}
		prefix := strings.TrimSpace(record[cols.prefix])
		if prefix == "" {
			warnMalformed(log, sourceName, lineNo, "empty prefix")
			continue
		}
		rovInvalid, err := parseBool(record[cols.rovInvalid])
		if err != nil {
			warnMalformed(log, sourceName, lineNo, fmt.Sprintf("invalid rov_invalid: %s", err))
			continue
		}

		seedASN := routing.ASN(asn)
		ann := routing.Announcement{
			Prefix:       prefix,
			ASPath:       []routing.ASN{seedASN},
			NextHopASN:   seedASN,
			ReceivedFrom: routing.Origin,
			ROVInvalid:   rovInvalid,
		}
		if err := ann.Validate(seedASN); err != nil {
			warnMalformed(log, sourceName, lineNo, err.Error())
			continue
		}

		node := g.EnsureNode(seedASN)
		node.Seed(ann)
	}
	return nil
}

type announcementColumns struct {
	seedASN, prefix, rovInvalid int
}

func indexColumns(header []string, seedASNCol, prefixCol, rovInvalidCol string) announcementColumns {
	cols := announcementColumns{seedASN: 0, prefix: 1, rovInvalid: 2}
	for i, h := range header {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case seedASNCol:
			cols.seedASN = i
		case prefixCol:
			cols.prefix = i
		case rovInvalidCol:
			cols.rovInvalid = i
		}
	}
	return cols
}

// parseBool accepts the boolean spellings from spec.md §6: true/True/1 or
// false/False/0.
func parseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "True", "1":
		return true, nil
	case "false", "False", "0":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean %q", s)
	}
}
