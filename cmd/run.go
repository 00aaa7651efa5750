package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/riftgraph/asrov/core"
	"github.com/riftgraph/asrov/simconfig"
)

var (
	relationshipsPath string
	announcementsPath string
	rovAsnsPath       string
	outputPath        string
	configPath        string
	logFile           string
	verbose           bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation to convergence and write ribs.csv",
	Long: `Parses a CAIDA-style relationships file, an announcements CSV, and
an ROV-AS list, runs the three-phase valley-free propagation engine to a
single convergence sweep, and writes the resulting per-AS RIB to a CSV
file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := core.Options{
			RelationshipsPath: relationshipsPath,
			AnnouncementsPath: announcementsPath,
			ROVAsnsPath:       rovAsnsPath,
			OutputPath:        simconfig.StringOr(outputPath, "ribs.csv"),
			LogLevel:          slog.LevelInfo,
			LogFile:           logFile,
		}

		if configPath != "" {
			profile, err := simconfig.Load(configPath)
			if err != nil {
				return err
			}
			if err := profile.Validate(); err != nil {
				return err
			}
			opt.RelationshipsPath = simconfig.StringOr(relationshipsPath, profile.RelationshipsPath)
			opt.AnnouncementsPath = simconfig.StringOr(announcementsPath, profile.AnnouncementsPath)
			opt.ROVAsnsPath = simconfig.StringOr(rovAsnsPath, profile.ROVAsnsPath)
			opt.OutputPath = simconfig.StringOr(outputPath, simconfig.StringOr(profile.OutputPath, "ribs.csv"))
			opt.LogFile = simconfig.StringOr(logFile, profile.LogFile)
			if !verbose {
				opt.LogLevel = profile.Level()
			}
		}

		if verbose {
			opt.LogLevel = slog.LevelDebug
		}

		if opt.RelationshipsPath == "" || opt.AnnouncementsPath == "" || opt.ROVAsnsPath == "" {
			return errMissingRequiredFlag
		}

		return core.Run(opt)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&relationshipsPath, "relationships", "", "path to the CAIDA as-rel2 relationships file (required)")
	runCmd.Flags().StringVar(&announcementsPath, "announcements", "", "path to the announcements CSV (required)")
	runCmd.Flags().StringVar(&rovAsnsPath, "rov-asns", "", "path to the ROV-adopting AS list (required)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "path to write the RIB CSV (default: ribs.csv)")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML run profile providing defaults for the flags above")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "optional path to additionally write logs to")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
