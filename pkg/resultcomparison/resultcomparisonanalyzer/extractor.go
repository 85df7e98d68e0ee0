package resultcomparisonanalyzer

import (
	"github.com/montanaflynn/stats"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

// ComputeMetrics derives the flat per-group summary from the raw tables.
// Every table may be absent; the corresponding fields stay 0. All ratios
// guard their denominator, a zero denominator yields 0.
func ComputeMetrics(group resultcomparisonapi.ResultGroup, tables resultcomparisonapi.RawRecordTables) resultcomparisonapi.MetricsRecord {
	record := resultcomparisonapi.MetricsRecord{
		DatabaseName: group.Name,
		TargetUsers:  group.TargetUserCount,
	}

	for _, sample := range tables.History {
		if sample.UserCount > record.MaxUsersReached {
			record.MaxUsersReached = sample.UserCount
		}
	}
	if record.TargetUsers > 0 {
		record.UserAchievementRate = float64(record.MaxUsersReached) / float64(record.TargetUsers) * 100
	}

	if aggregate, ok := aggregateRow(tables.Stats); ok {
		record.TotalRequests = aggregate.RequestCount
		record.RequestsPerSec = aggregate.RequestsPerSec
		record.AvgResponseTime = aggregate.AverageResponseTime
		record.MedianResponseTime = aggregate.MedianResponseTime
		record.MinResponseTime = aggregate.MinResponseTime
		record.MaxResponseTime = aggregate.MaxResponseTime
		record.P50 = aggregate.P50
		record.P90 = aggregate.P90
		record.P95 = aggregate.P95
		record.P99 = aggregate.P99
		record.TotalFailures = aggregate.FailureCount
		if aggregate.RequestCount > 0 {
			record.FailureRate = float64(aggregate.FailureCount) / float64(aggregate.RequestCount) * 100
		}
		if record.MaxUsersReached > 0 {
			record.ThroughputPerUser = record.RequestsPerSec / float64(record.MaxUsersReached)
		}
	}

	// Consistency is measured only over samples with actual traffic:
	// zero-throughput samples from ramp-up gaps would bias the deviation.
	var throughputs, latencies []float64
	for _, sample := range tables.History {
		if sample.RequestsPerSec > 0 {
			throughputs = append(throughputs, sample.RequestsPerSec)
			latencies = append(latencies, sample.TotalAvgResponseTime)
		}
	}
	if len(throughputs) > 0 {
		record.ThroughputStdDev = sampleStdDev(throughputs)
		if mean, err := stats.Mean(throughputs); err == nil && mean > 0 {
			record.ThroughputCV = record.ThroughputStdDev / mean
		}
		record.LatencyStdDev = sampleStdDev(latencies)
	}

	return record
}

// aggregateRow picks the summary row of a stats table: the last row literally
// named "Aggregated", else the table's last row. This mirrors the output
// convention of the load-testing tool, which appends the summary after the
// per-endpoint rows.
func aggregateRow(rows []resultcomparisonapi.StatsRow) (resultcomparisonapi.StatsRow, bool) {
	if len(rows) == 0 {
		return resultcomparisonapi.StatsRow{}, false
	}
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Name == resultcomparisonapi.AggregatedRowName {
			return rows[i], true
		}
	}
	return rows[len(rows)-1], true
}

// sampleStdDev is the n-1 form. A single sample has no spread to measure and
// yields 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	deviation, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return deviation
}
