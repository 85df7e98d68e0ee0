package resultcomparisonapi

// AggregatedRowName is the literal marker Locust uses for the summary row
// that represents all endpoints combined.
const AggregatedRowName = "Aggregated"

// GroupFiles holds the paths of the tabular files belonging to one result
// group. Every field except Stats may be empty, which means the run did not
// produce that table.
type GroupFiles struct {
	Stats      string
	Failures   string
	Exceptions string
	History    string
}

// ResultGroup identifies one backend's complete set of load-test output files
// inside a results directory. Groups are discovered once per comparison and
// never mutated afterwards.
type ResultGroup struct {
	// Name is the filename prefix shared by the group's files, e.g. "pg"
	// for pg_100000_1m_stats.csv.
	Name string

	// TargetUserCount is the configured peak concurrency, parsed from the
	// results directory's leading numeric token ("100000_1m" -> 100000).
	// Zero when the directory name carries no parseable token.
	TargetUserCount int

	Files GroupFiles
}

// StatsRow is one row of the aggregate request statistics table. Locust
// writes one row per logical endpoint plus the Aggregated summary row.
type StatsRow struct {
	Name                string
	RequestCount        int64
	FailureCount        int64
	MedianResponseTime  float64
	AverageResponseTime float64
	MinResponseTime     float64
	MaxResponseTime     float64
	RequestsPerSec      float64
	P50                 float64
	P90                 float64
	P95                 float64
	P99                 float64
}

// HistorySample is one time-ordered sample of the stats history table.
type HistorySample struct {
	Timestamp            int64
	UserCount            int
	RequestsPerSec       float64
	TotalAvgResponseTime float64
}

// FailureRow is a diagnostic row from the failures table. The comparison
// core only checks for presence, it never aggregates these numerically.
type FailureRow struct {
	Method      string
	Name        string
	Error       string
	Occurrences int64
}

// ExceptionRow is a diagnostic row from the exceptions table.
type ExceptionRow struct {
	Count   int64
	Message string
}

// RawRecordTables bundles the loaded tables of one result group. A nil slice
// means the corresponding file was absent or empty, which is valid data, not
// an error.
type RawRecordTables struct {
	Stats      []StatsRow
	Failures   []FailureRow
	Exceptions []ExceptionRow
	History    []HistorySample
}

// MetricsRecord is the flat per-group summary derived from RawRecordTables.
// Every rate and ratio field is guarded: a zero denominator yields 0 rather
// than NaN or Inf.
type MetricsRecord struct {
	DatabaseName string `json:"database"`

	TargetUsers         int     `json:"targetUsers"`
	MaxUsersReached     int     `json:"maxUsersReached"`
	UserAchievementRate float64 `json:"userAchievementRate"`

	TotalRequests  int64   `json:"totalRequests"`
	RequestsPerSec float64 `json:"requestsPerSec"`

	AvgResponseTime    float64 `json:"avgResponseTime"`
	MedianResponseTime float64 `json:"medianResponseTime"`
	MinResponseTime    float64 `json:"minResponseTime"`
	MaxResponseTime    float64 `json:"maxResponseTime"`
	P50                float64 `json:"p50"`
	P90                float64 `json:"p90"`
	P95                float64 `json:"p95"`
	P99                float64 `json:"p99"`

	TotalFailures int64   `json:"totalFailures"`
	FailureRate   float64 `json:"failureRate"`

	ThroughputPerUser float64 `json:"throughputPerUser"`
	ThroughputStdDev  float64 `json:"throughputStdDev"`
	ThroughputCV      float64 `json:"throughputCV"`
	LatencyStdDev     float64 `json:"latencyStdDev"`
}

// ScoredRecord is a MetricsRecord extended with the five normalized
// sub-scores and the weighted composite. Scores are relative to the other
// groups of the same comparison run and are meaningless across runs.
type ScoredRecord struct {
	MetricsRecord

	ScalabilityScore float64 `json:"scalabilityScore"`
	ThroughputScore  float64 `json:"throughputScore"`
	LatencyScore     float64 `json:"latencyScore"`
	ReliabilityScore float64 `json:"reliabilityScore"`
	ConsistencyScore float64 `json:"consistencyScore"`
	OverallScore     float64 `json:"overallScore"`
}

// Dimension names accepted by a WeightConfiguration.
const (
	DimensionScalability = "scalability"
	DimensionThroughput  = "throughput"
	DimensionLatency     = "latency"
	DimensionReliability = "reliability"
	DimensionConsistency = "consistency"
)

// WeightConfiguration maps dimension names to the weight of that dimension
// in the composite score. The core never validates that weights sum to 1;
// callers overriding the defaults own the sanity of the total.
type WeightConfiguration map[string]float64

// Comparison is the facade output consumed by the rendering layer: the full
// ranked list plus the independently computed leaders. The leaders may
// disagree with the winner, and exposing that divergence is the point.
type Comparison struct {
	ResultsDir string `json:"resultsDir"`

	// Ranked is sorted descending by OverallScore; ties keep discovery order.
	Ranked []ScoredRecord `json:"ranked"`

	// Winner is Ranked[0], the group with the best weighted composite.
	Winner ScoredRecord `json:"winner"`

	// ScalabilityLeader has the maximum userAchievementRate, which is not
	// necessarily the winner.
	ScalabilityLeader ScoredRecord `json:"scalabilityLeader"`

	// ThroughputLeader has the maximum requestsPerSec.
	ThroughputLeader ScoredRecord `json:"throughputLeader"`

	// TotalRequestsLeader processed the most requests in total.
	TotalRequestsLeader ScoredRecord `json:"totalRequestsLeader"`

	// EfficiencyLeader has the maximum throughputPerUser.
	EfficiencyLeader ScoredRecord `json:"efficiencyLeader"`
}
