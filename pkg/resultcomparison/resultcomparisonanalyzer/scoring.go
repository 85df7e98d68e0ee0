package resultcomparisonanalyzer

import (
	"github.com/montanaflynn/stats"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

// ScoreMetrics turns the full batch of metrics records into scored records.
// Normalization is relative to the peer set, so the whole batch must be
// passed at once and the resulting scores are only comparable within this
// one comparison run. The function is pure: same input and weights, same
// output, regardless of call order.
func ScoreMetrics(records []resultcomparisonapi.MetricsRecord, weights resultcomparisonapi.WeightConfiguration) []resultcomparisonapi.ScoredRecord {
	scored := make([]resultcomparisonapi.ScoredRecord, 0, len(records))
	if len(records) == 0 {
		return scored
	}

	achievementRates := make([]float64, 0, len(records))
	throughputs := make([]float64, 0, len(records))
	latencies := make([]float64, 0, len(records))
	failureRates := make([]float64, 0, len(records))
	variationCoefficients := make([]float64, 0, len(records))
	for _, record := range records {
		achievementRates = append(achievementRates, record.UserAchievementRate)
		throughputs = append(throughputs, record.RequestsPerSec)
		latencies = append(latencies, record.AvgResponseTime)
		failureRates = append(failureRates, record.FailureRate)
		variationCoefficients = append(variationCoefficients, record.ThroughputCV)
	}

	maxAchievement := maxOf(achievementRates)
	maxThroughput := maxOf(throughputs)
	minLatency, maxLatency := minOf(latencies), maxOf(latencies)
	maxFailureRate := maxOf(failureRates)
	minCV, maxCV := minOf(variationCoefficients), maxOf(variationCoefficients)

	for _, record := range records {
		s := resultcomparisonapi.ScoredRecord{MetricsRecord: record}

		// Higher is better, relative to the best group in this run. The
		// best-scaling group always scores 100 even when it missed its
		// own target.
		if maxAchievement > 0 {
			s.ScalabilityScore = record.UserAchievementRate / maxAchievement * 100
		}
		if maxThroughput > 0 {
			s.ThroughputScore = record.RequestsPerSec / maxThroughput * 100
		}

		// Lower is better, inverted over the peer range. A collapsed range
		// (all groups equal, or a single group) scores 100.
		s.LatencyScore = invertedRangeScore(record.AvgResponseTime, minLatency, maxLatency)
		s.ConsistencyScore = invertedRangeScore(record.ThroughputCV, minCV, maxCV)

		// Reliability inverts against the worst failure rate; when nobody
		// failed everyone scores 100.
		if maxFailureRate > 0 {
			s.ReliabilityScore = (1 - record.FailureRate/maxFailureRate) * 100
		} else {
			s.ReliabilityScore = 100
		}

		s.OverallScore = s.ScalabilityScore*weights[resultcomparisonapi.DimensionScalability] +
			s.ThroughputScore*weights[resultcomparisonapi.DimensionThroughput] +
			s.LatencyScore*weights[resultcomparisonapi.DimensionLatency] +
			s.ReliabilityScore*weights[resultcomparisonapi.DimensionReliability] +
			s.ConsistencyScore*weights[resultcomparisonapi.DimensionConsistency]

		scored = append(scored, s)
	}
	return scored
}

func invertedRangeScore(value, min, max float64) float64 {
	if max <= min {
		return 100
	}
	return (1 - (value-min)/(max-min)) * 100
}

func maxOf(values []float64) float64 {
	max, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return max
}

func minOf(values []float64) float64 {
	min, err := stats.Min(values)
	if err != nil {
		return 0
	}
	return min
}
