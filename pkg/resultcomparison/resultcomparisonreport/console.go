package resultcomparisonreport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kataras/tablewriter"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

// WriteRankingTable prints the ranked comparison as a console table.
func WriteRankingTable(w io.Writer, comparison *resultcomparisonapi.Comparison) {
	_, _ = fmt.Fprintf(w, "Comparison for %s\n", comparison.ResultsDir)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"rank", "database", "overall", "scalability", "throughput", "latency", "reliability", "consistency", "req/s", "avg ms", "failures %"})
	for i, record := range comparison.Ranked {
		table.Append([]string{
			strconv.Itoa(i + 1),
			record.DatabaseName,
			fmt.Sprintf("%.1f", record.OverallScore),
			fmt.Sprintf("%.1f", record.ScalabilityScore),
			fmt.Sprintf("%.1f", record.ThroughputScore),
			fmt.Sprintf("%.1f", record.LatencyScore),
			fmt.Sprintf("%.1f", record.ReliabilityScore),
			fmt.Sprintf("%.1f", record.ConsistencyScore),
			fmt.Sprintf("%.1f", record.RequestsPerSec),
			fmt.Sprintf("%.2f", record.AvgResponseTime),
			fmt.Sprintf("%.2f", record.FailureRate),
		})
	}
	table.Render()
}

// WriteLeaderSummary prints the winner and the per-dimension leaders,
// including the divergence note when the scalability leader is not the
// score winner.
func WriteLeaderSummary(w io.Writer, comparison *resultcomparisonapi.Comparison) {
	_, _ = fmt.Fprintf(w, "Performance winner: %s (%.1f/100)\n", comparison.Winner.DatabaseName, comparison.Winner.OverallScore)
	_, _ = fmt.Fprintf(w, "Most users handled: %s reached %d users (%.1f%% of target)\n",
		comparison.ScalabilityLeader.DatabaseName, comparison.ScalabilityLeader.MaxUsersReached, comparison.ScalabilityLeader.UserAchievementRate)
	_, _ = fmt.Fprintf(w, "Highest throughput: %s with %.1f req/s\n",
		comparison.ThroughputLeader.DatabaseName, comparison.ThroughputLeader.RequestsPerSec)
	_, _ = fmt.Fprintf(w, "Most total work: %s processed %d requests\n",
		comparison.TotalRequestsLeader.DatabaseName, comparison.TotalRequestsLeader.TotalRequests)
	_, _ = fmt.Fprintf(w, "Best efficiency: %s with %.2f req/s per user\n",
		comparison.EfficiencyLeader.DatabaseName, comparison.EfficiencyLeader.ThroughputPerUser)
	if comparison.ScalabilityLeader.DatabaseName != comparison.Winner.DatabaseName {
		_, _ = fmt.Fprintf(w, "Note: %s won the weighted score but %s scaled further (%.1f%% vs %.1f%% of target users)\n",
			comparison.Winner.DatabaseName, comparison.ScalabilityLeader.DatabaseName,
			comparison.ScalabilityLeader.UserAchievementRate, comparison.Winner.UserAchievementRate)
	}
}
