package resultcomparisonanalyzer

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonlib"
)

// ErrNoResultGroups is returned when the results directory contains no stats
// file for any group. It is a terminal condition for that comparison run, not
// a crash: the caller reports "no results" and moves on.
var ErrNoResultGroups = errors.New("no result groups found in results directory")

// ResultComparator runs one comparison: discover the result groups of a
// directory, extract their metrics, score them against each other, and rank
// them. Comparators share no state, so concurrent comparisons over disjoint
// directories are safe.
type ResultComparator struct {
	fs         afero.Fs
	resultsDir string
	weights    resultcomparisonapi.WeightConfiguration
	logger     *logrus.Entry
}

func NewResultComparator(fs afero.Fs, resultsDir string, weights resultcomparisonapi.WeightConfiguration) *ResultComparator {
	return &ResultComparator{
		fs:         fs,
		resultsDir: resultsDir,
		weights:    weights,
		logger:     logrus.WithField("results-dir", resultsDir),
	}
}

// Compare produces the ranked comparison for the results directory. The
// ranked list is sorted descending by overall score with ties keeping
// discovery order. The leaders are computed independently of the sort, so a
// caller can surface a "score winner vs scalability leader" divergence
// without recomputing anything.
func (c *ResultComparator) Compare(ctx context.Context) (*resultcomparisonapi.Comparison, error) {
	locator := resultcomparisonlib.NewResultSetLocator(c.fs, c.resultsDir)
	groups, err := locator.FindResultGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrNoResultGroups
	}

	// Extraction per group is independent; only scoring needs the full set.
	metrics := make([]resultcomparisonapi.MetricsRecord, len(groups))
	eg, _ := errgroup.WithContext(ctx)
	for i, group := range groups {
		i, group := i, group
		eg.Go(func() error {
			tables, err := resultcomparisonlib.LoadRawTables(c.fs, group)
			if err != nil {
				return err
			}
			metrics[i] = ComputeMetrics(group, tables)
			c.logger.WithField("group", group.Name).
				WithField("requests", metrics[i].TotalRequests).
				Debug("extracted metrics")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	scored := ScoreMetrics(metrics, c.weights)

	ranked := make([]resultcomparisonapi.ScoredRecord, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	return &resultcomparisonapi.Comparison{
		ResultsDir:          c.resultsDir,
		Ranked:              ranked,
		Winner:              ranked[0],
		ScalabilityLeader:   leaderBy(scored, func(r resultcomparisonapi.ScoredRecord) float64 { return r.UserAchievementRate }),
		ThroughputLeader:    leaderBy(scored, func(r resultcomparisonapi.ScoredRecord) float64 { return r.RequestsPerSec }),
		TotalRequestsLeader: leaderBy(scored, func(r resultcomparisonapi.ScoredRecord) float64 { return float64(r.TotalRequests) }),
		EfficiencyLeader:    leaderBy(scored, func(r resultcomparisonapi.ScoredRecord) float64 { return r.ThroughputPerUser }),
	}, nil
}

// leaderBy returns the record with the maximum value, first one winning ties
// so leaders are deterministic in discovery order.
func leaderBy(records []resultcomparisonapi.ScoredRecord, value func(resultcomparisonapi.ScoredRecord) float64) resultcomparisonapi.ScoredRecord {
	leader := records[0]
	for _, record := range records[1:] {
		if value(record) > value(leader) {
			leader = record
		}
	}
	return leader
}
