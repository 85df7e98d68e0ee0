package resultcomparisonlib

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

func TestFindResultGroups(t *testing.T) {
	resultsDir := filepath.Join("results", "100000_1m")

	tests := []struct {
		name     string
		files    []string
		expected []resultcomparisonapi.ResultGroup
	}{
		{
			name: "two groups with optional companions",
			files: []string{
				"pg_100000_1m_stats.csv",
				"pg_100000_1m_failures.csv",
				"pg_100000_1m_stats_history.csv",
				"scylla_100000_1m_stats.csv",
				"scylla_100000_1m_exceptions.csv",
			},
			expected: []resultcomparisonapi.ResultGroup{
				{
					Name:            "pg",
					TargetUserCount: 100000,
					Files: resultcomparisonapi.GroupFiles{
						Stats:    filepath.Join(resultsDir, "pg_100000_1m_stats.csv"),
						Failures: filepath.Join(resultsDir, "pg_100000_1m_failures.csv"),
						History:  filepath.Join(resultsDir, "pg_100000_1m_stats_history.csv"),
					},
				},
				{
					Name:            "scylla",
					TargetUserCount: 100000,
					Files: resultcomparisonapi.GroupFiles{
						Stats:      filepath.Join(resultsDir, "scylla_100000_1m_stats.csv"),
						Exceptions: filepath.Join(resultsDir, "scylla_100000_1m_exceptions.csv"),
					},
				},
			},
		},
		{
			name: "history file alone does not make a group",
			files: []string{
				"pg_100000_1m_stats_history.csv",
				"scylla_100000_1m_stats.csv",
			},
			expected: []resultcomparisonapi.ResultGroup{
				{
					Name:            "scylla",
					TargetUserCount: 100000,
					Files: resultcomparisonapi.GroupFiles{
						Stats: filepath.Join(resultsDir, "scylla_100000_1m_stats.csv"),
					},
				},
			},
		},
		{
			name: "unrelated files are ignored",
			files: []string{
				"comparison_report.html",
				"notes.txt",
			},
			expected: []resultcomparisonapi.ResultGroup{},
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: []resultcomparisonapi.ResultGroup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll(resultsDir, 0755))
			for _, file := range tt.files {
				require.NoError(t, afero.WriteFile(fs, filepath.Join(resultsDir, file), []byte("Name\n"), 0644))
			}

			groups, err := NewResultSetLocator(fs, resultsDir).FindResultGroups(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, groups); diff != "" {
				t.Errorf("unexpected groups: %s", diff)
			}
		})
	}
}

func TestFindResultGroupsDeduplicates(t *testing.T) {
	resultsDir := "10_1m"
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(resultsDir, 0755))
	for _, file := range []string{"pg_10_1m_stats.csv", "pg_10_5m_stats.csv"} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(resultsDir, file), []byte("Name\n"), 0644))
	}

	groups, err := NewResultSetLocator(fs, resultsDir).FindResultGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "pg", groups[0].Name)
	// First stats file in directory order carries the base pattern.
	assert.Equal(t, filepath.Join(resultsDir, "pg_10_1m_stats.csv"), groups[0].Files.Stats)
}

func TestFindResultGroupsMissingDirectory(t *testing.T) {
	_, err := NewResultSetLocator(afero.NewMemMapFs(), "does-not-exist").FindResultGroups(context.Background())
	assert.Error(t, err)
}

func TestParseTargetUserCount(t *testing.T) {
	tests := []struct {
		name     string
		dirName  string
		expected int
	}{
		{name: "users and duration", dirName: "100000_1m", expected: 100000},
		{name: "users only", dirName: "500", expected: 500},
		{name: "non-numeric prefix", dirName: "results_1m", expected: 0},
		{name: "empty", dirName: "", expected: 0},
		{name: "negative token", dirName: "-5_1m", expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTargetUserCount(tt.dirName))
		})
	}
}
