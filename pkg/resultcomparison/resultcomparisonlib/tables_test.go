package resultcomparisonlib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

const statsCSV = `"Type","Name","Request Count","Failure Count","Median Response Time","Average Response Time","Min Response Time","Max Response Time","Average Content Size","Requests/s","Failures/s","50%","66%","75%","80%","90%","95%","98%","99%","99.9%","99.99%","100%"
"GET","read item","60000","12","45","50.5","1","500","120","500.5","0.1","45","52","60","66","80","95","110","120","150","160","500"
"","Aggregated","60000","12","45","50.5","1","500","120","500.5","0.1","45","52","60","66","80","95","110","120","150","160","500"
`

const historyCSV = `"Timestamp","User Count","Type","Name","Requests/s","Failures/s","50%","66%","75%","80%","90%","95%","98%","99%","99.9%","99.99%","100%","Total Request Count","Total Failure Count","Total Median Response Time","Total Average Response Time","Total Min Response Time","Total Max Response Time","Total Average Content Size"
"1700000000","100","","Aggregated","0.0","0.0","N/A","N/A","N/A","N/A","N/A","N/A","N/A","N/A","N/A","N/A","N/A","0","0","0","0","0","0","0"
"1700000005","250","","Aggregated","480.5","0.0","40","50","55","60","75","90","100","110","140","150","480","2400","0","40","48.7","1","480","120"
`

const failuresCSV = `"Method","Name","Error","Occurrences"
"GET","read item","HTTPError('500 Server Error')","12"
`

const exceptionsCSV = `"Count","Message","Traceback","Nodes"
"3","ConnectionResetError","...","worker-1"
`

func TestLoadRawTables(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pg_stats.csv", []byte(statsCSV), 0644))
	require.NoError(t, afero.WriteFile(fs, "pg_stats_history.csv", []byte(historyCSV), 0644))
	require.NoError(t, afero.WriteFile(fs, "pg_failures.csv", []byte(failuresCSV), 0644))
	require.NoError(t, afero.WriteFile(fs, "pg_exceptions.csv", []byte(exceptionsCSV), 0644))

	group := resultcomparisonapi.ResultGroup{
		Name: "pg",
		Files: resultcomparisonapi.GroupFiles{
			Stats:      "pg_stats.csv",
			History:    "pg_stats_history.csv",
			Failures:   "pg_failures.csv",
			Exceptions: "pg_exceptions.csv",
		},
	}

	tables, err := LoadRawTables(fs, group)
	require.NoError(t, err)

	expectedStats := []resultcomparisonapi.StatsRow{
		{
			Name:                "read item",
			RequestCount:        60000,
			FailureCount:        12,
			MedianResponseTime:  45,
			AverageResponseTime: 50.5,
			MinResponseTime:     1,
			MaxResponseTime:     500,
			RequestsPerSec:      500.5,
			P50:                 45,
			P90:                 80,
			P95:                 95,
			P99:                 120,
		},
		{
			Name:                "Aggregated",
			RequestCount:        60000,
			FailureCount:        12,
			MedianResponseTime:  45,
			AverageResponseTime: 50.5,
			MinResponseTime:     1,
			MaxResponseTime:     500,
			RequestsPerSec:      500.5,
			P50:                 45,
			P90:                 80,
			P95:                 95,
			P99:                 120,
		},
	}
	if diff := cmp.Diff(expectedStats, tables.Stats); diff != "" {
		t.Errorf("unexpected stats rows: %s", diff)
	}

	expectedHistory := []resultcomparisonapi.HistorySample{
		{Timestamp: 1700000000, UserCount: 100, RequestsPerSec: 0, TotalAvgResponseTime: 0},
		{Timestamp: 1700000005, UserCount: 250, RequestsPerSec: 480.5, TotalAvgResponseTime: 48.7},
	}
	if diff := cmp.Diff(expectedHistory, tables.History); diff != "" {
		t.Errorf("unexpected history samples: %s", diff)
	}

	require.Len(t, tables.Failures, 1)
	assert.Equal(t, int64(12), tables.Failures[0].Occurrences)
	require.Len(t, tables.Exceptions, 1)
	assert.Equal(t, int64(3), tables.Exceptions[0].Count)
}

func TestLoadRawTablesMissingCompanions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "scylla_stats.csv", []byte(statsCSV), 0644))

	tables, err := LoadRawTables(fs, resultcomparisonapi.ResultGroup{
		Name:  "scylla",
		Files: resultcomparisonapi.GroupFiles{Stats: "scylla_stats.csv"},
	})
	require.NoError(t, err)
	assert.Len(t, tables.Stats, 2)
	assert.Nil(t, tables.History)
	assert.Nil(t, tables.Failures)
	assert.Nil(t, tables.Exceptions)
}

func TestLoadRawTablesFileRemovedAfterDiscovery(t *testing.T) {
	tables, err := LoadRawTables(afero.NewMemMapFs(), resultcomparisonapi.ResultGroup{
		Name:  "pg",
		Files: resultcomparisonapi.GroupFiles{Stats: "pg_stats.csv"},
	})
	require.NoError(t, err)
	assert.Nil(t, tables.Stats)
}

func TestLoadRawTablesHeaderOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pg_stats.csv", []byte(`"Type","Name","Request Count"`+"\n"), 0644))

	tables, err := LoadRawTables(fs, resultcomparisonapi.ResultGroup{
		Name:  "pg",
		Files: resultcomparisonapi.GroupFiles{Stats: "pg_stats.csv"},
	})
	require.NoError(t, err)
	assert.Empty(t, tables.Stats)
}

func TestLoadRawTablesBrokenCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pg_stats.csv", []byte("Name\n\"unterminated"), 0644))

	_, err := LoadRawTables(fs, resultcomparisonapi.ResultGroup{
		Name:  "pg",
		Files: resultcomparisonapi.GroupFiles{Stats: "pg_stats.csv"},
	})
	assert.Error(t, err)
}
