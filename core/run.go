// Package core wires the collaborators, the AS graph, and the propagation
// engine together, and owns the *slog.Logger used across the run. This is
// the single entry point cmd invokes.
package core

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"

	"github.com/riftgraph/asrov/ingest"
	"github.com/riftgraph/asrov/propagate"
	"github.com/riftgraph/asrov/ribout"
	"github.com/riftgraph/asrov/simerr"
	"github.com/riftgraph/asrov/topology"
)

// Options configures one simulation run. Zero value paths are invalid;
// callers (package cmd) must resolve flag/config defaults before calling
// Run.
type Options struct {
	RelationshipsPath string
	AnnouncementsPath string
	ROVAsnsPath       string
	OutputPath        string
	LogLevel          slog.Level
	LogFile           string
}

// newLogger builds the run's logger the way the teacher's core.Start does:
// a colored tint handler on stderr, optionally fanned out to a plain text
// handler writing to a log file.
func newLogger(opt Options) (*slog.Logger, error) {
	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:     opt.LogLevel,
			AddSource: false,
		}),
	}
	if opt.LogFile != "" {
		f, err := os.OpenFile(opt.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", opt.LogFile, err)
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opt.LogLevel}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// Run executes exactly the dataflow from spec.md §2: parse the three
// inputs into an AS graph, run the propagation engine once, and serialise
// the converged RIB. Returns a typed error from package simerr on any
// fatal condition (spec.md §7); the caller (package cmd) maps that to an
// exit code.
func Run(opt Options) error {
	log, err := newLogger(opt)
	if err != nil {
		return err
	}

	g := topology.New()

	log.Info("loading relationships", "path", opt.RelationshipsPath)
	if err := ingest.ReadRelationshipsFile(opt.RelationshipsPath, g, log); err != nil {
		return err
	}

	log.Info("checking provider-cycle invariant")
	if err := g.CheckCycles(); err != nil {
		if cycle, ok := err.(*simerr.TopologyCycle); ok {
			log.Error("topology cycle detected, aborting before propagation", "asn", cycle.ASN)
		}
		return err
	}
	g.ComputeRanks()
	log.Info("graph ready", "ases", g.Len(), "max_rank", g.MaxRank())

	log.Info("seeding announcements", "path", opt.AnnouncementsPath)
	if err := ingest.SeedAnnouncementsFile(opt.AnnouncementsPath, g, log); err != nil {
		return err
	}

	log.Info("applying ROV set", "path", opt.ROVAsnsPath)
	if err := ingest.ApplyROVSetFile(opt.ROVAsnsPath, g, log); err != nil {
		return err
	}

	log.Info("propagating routes")
	if err := propagate.Run(g, log); err != nil {
		return err
	}

	log.Info("writing RIB", "path", opt.OutputPath)
	if err := ribout.WriteCSVFile(opt.OutputPath, g); err != nil {
		return err
	}

	log.Info("done")
	return nil
}
