package core

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/riftgraph/asrov/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 6: a provider-cycle relationships file must abort before
// propagation ever runs, and must never produce a RIB file.
func TestRun_CycleRejection_NoRIBWritten(t *testing.T) {
	dir := t.TempDir()

	relPath := filepath.Join(dir, "relationships.txt")
	require.NoError(t, os.WriteFile(relPath, []byte("1|2|-1\n2|1|-1\n"), 0644))

	announcementsPath := filepath.Join(dir, "announcements.csv")
	require.NoError(t, os.WriteFile(announcementsPath, []byte("seed_asn,prefix,rov_invalid\n"), 0644))

	rovAsnsPath := filepath.Join(dir, "rov_asns.txt")
	require.NoError(t, os.WriteFile(rovAsnsPath, []byte(""), 0644))

	outputPath := filepath.Join(dir, "ribs.csv")

	err := Run(Options{
		RelationshipsPath: relPath,
		AnnouncementsPath: announcementsPath,
		ROVAsnsPath:       rovAsnsPath,
		OutputPath:        outputPath,
		LogLevel:          slog.LevelError,
	})

	require.Error(t, err)
	var cycle *simerr.TopologyCycle
	assert.ErrorAs(t, err, &cycle)

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr), "ribs.csv must not be written when the topology has a provider cycle")
}
