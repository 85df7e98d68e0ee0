package resultcomparisonreport

import (
	"bytes"
	"html/template"
	"time"

	"github.com/spf13/afero"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

const reportPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8"><title>Database Performance Comparison</title>
<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: right; }
th, td:first-child, td:nth-child(2) { text-align: left; }
.winner { background: #e8f5e9; border: 1px solid #66bb6a; padding: 1em; margin: 1em 0; }
.divergence { background: #fff8e1; border: 1px solid #ffca28; padding: 1em; margin: 1em 0; }
.highlight { background: #e8f5e9; }
</style>
</head>
<body>
<h1>Database Performance Comparison</h1>
<p>Results: {{.ResultsDir}} &mdash; generated {{.GeneratedAt}}</p>

<div class="winner">
<h2>Performance Winner: {{.Winner.DatabaseName}}</h2>
<p>Overall score <strong>{{printf "%.1f" .Winner.OverallScore}}/100</strong> &mdash;
{{printf "%.1f" .Winner.UserAchievementRate}}% users reached,
{{printf "%.1f" .Winner.RequestsPerSec}} req/s,
{{printf "%.2f" .Winner.AvgResponseTime}}ms average latency,
{{printf "%.2f" .Winner.FailureRate}}% failures</p>
</div>

{{if .Divergent}}
<div class="divergence">
<h3>Score winner vs. scalability leader</h3>
<p><strong>{{.Winner.DatabaseName}}</strong> won the weighted score
({{printf "%.1f" .Winner.OverallScore}}/100) but handled
{{.Winner.MaxUsersReached}} users ({{printf "%.1f" .Winner.UserAchievementRate}}% of target).</p>
<p><strong>{{.ScalabilityLeader.DatabaseName}}</strong> scaled further, handling
{{.ScalabilityLeader.MaxUsersReached}} users
({{printf "%.1f" .ScalabilityLeader.UserAchievementRate}}% of target).</p>
</div>
{{end}}

<h2>Ranking</h2>
<table>
<tr><th>Rank</th><th>Database</th><th>Overall</th><th>Scalability</th><th>Throughput</th><th>Latency</th><th>Reliability</th><th>Consistency</th></tr>
{{range $i, $r := .Ranked}}
<tr{{if eq $r.DatabaseName $.Winner.DatabaseName}} class="highlight"{{end}}>
<td>{{inc $i}}</td><td>{{$r.DatabaseName}}</td>
<td>{{printf "%.1f" $r.OverallScore}}</td>
<td>{{printf "%.1f" $r.ScalabilityScore}}</td>
<td>{{printf "%.1f" $r.ThroughputScore}}</td>
<td>{{printf "%.1f" $r.LatencyScore}}</td>
<td>{{printf "%.1f" $r.ReliabilityScore}}</td>
<td>{{printf "%.1f" $r.ConsistencyScore}}</td>
</tr>
{{end}}
</table>

<h2>Detailed metrics</h2>
<table>
<tr><th>Database</th><th>Users reached</th><th>Requests</th><th>Req/s</th><th>Avg ms</th><th>Median ms</th><th>p90 ms</th><th>p95 ms</th><th>p99 ms</th><th>Failures</th><th>Failure %</th><th>Req/s per user</th><th>Throughput CV</th></tr>
{{range .Ranked}}
<tr>
<td>{{.DatabaseName}}</td>
<td>{{.MaxUsersReached}}</td>
<td>{{.TotalRequests}}</td>
<td>{{printf "%.1f" .RequestsPerSec}}</td>
<td>{{printf "%.2f" .AvgResponseTime}}</td>
<td>{{printf "%.2f" .MedianResponseTime}}</td>
<td>{{printf "%.1f" .P90}}</td>
<td>{{printf "%.1f" .P95}}</td>
<td>{{printf "%.1f" .P99}}</td>
<td>{{.TotalFailures}}</td>
<td>{{printf "%.2f" .FailureRate}}</td>
<td>{{printf "%.2f" .ThroughputPerUser}}</td>
<td>{{printf "%.3f" .ThroughputCV}}</td>
</tr>
{{end}}
</table>

<h2>Key findings</h2>
<ul>
<li><strong>Most users handled:</strong> {{.ScalabilityLeader.DatabaseName}} reached {{.ScalabilityLeader.MaxUsersReached}} users ({{printf "%.1f" .ScalabilityLeader.UserAchievementRate}}% of target)</li>
<li><strong>Highest throughput:</strong> {{.ThroughputLeader.DatabaseName}} achieved {{printf "%.1f" .ThroughputLeader.RequestsPerSec}} req/s</li>
<li><strong>Most total work:</strong> {{.TotalRequestsLeader.DatabaseName}} processed {{.TotalRequestsLeader.TotalRequests}} requests</li>
<li><strong>Best efficiency:</strong> {{.EfficiencyLeader.DatabaseName}} with {{printf "%.2f" .EfficiencyLeader.ThroughputPerUser}} req/s per user</li>
</ul>
</body>
</html>
`

var reportTemplate = template.Must(template.New("comparison").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(reportPage))

type reportData struct {
	*resultcomparisonapi.Comparison
	GeneratedAt string
	Divergent   bool
}

// RenderHTML renders the comparison report page.
func RenderHTML(comparison *resultcomparisonapi.Comparison) ([]byte, error) {
	data := reportData{
		Comparison:  comparison,
		GeneratedAt: time.Now().UTC().Format(time.RFC1123),
		Divergent:   comparison.ScalabilityLeader.DatabaseName != comparison.Winner.DatabaseName,
	}
	buf := &bytes.Buffer{}
	if err := reportTemplate.Execute(buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTMLReport renders the comparison and writes it to path.
func WriteHTMLReport(fs afero.Fs, path string, comparison *resultcomparisonapi.Comparison) error {
	page, err := RenderHTML(comparison)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, page, 0644)
}
