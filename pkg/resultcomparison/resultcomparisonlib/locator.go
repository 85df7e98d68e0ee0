package resultcomparisonlib

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

const (
	statsSuffix   = "_stats.csv"
	historySuffix = "_stats_history.csv"
)

// ResultSetLocator discovers the result groups contained in one results
// directory.
type ResultSetLocator interface {
	FindResultGroups(ctx context.Context) ([]resultcomparisonapi.ResultGroup, error)
}

type directoryLocator struct {
	fs         afero.Fs
	resultsDir string
}

func NewResultSetLocator(fs afero.Fs, resultsDir string) ResultSetLocator {
	return &directoryLocator{
		fs:         fs,
		resultsDir: resultsDir,
	}
}

// FindResultGroups scans the results directory for {group}_..._stats.csv
// files and returns one ResultGroup per distinct prefix, sorted by name.
// A group exists only if a stats file exists; the failures, exceptions and
// history files are optional companions resolved from the stats file's base
// pattern. An empty directory yields an empty slice, not an error.
func (l *directoryLocator) FindResultGroups(_ context.Context) ([]resultcomparisonapi.ResultGroup, error) {
	entries, err := afero.ReadDir(l.fs, l.resultsDir)
	if err != nil {
		return nil, err
	}

	targetUsers := ParseTargetUserCount(filepath.Base(l.resultsDir))

	// First stats file seen per prefix wins; directory entries are already
	// sorted by ReadDir.
	statsFileByGroup := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, statsSuffix) || strings.HasSuffix(name, historySuffix) {
			continue
		}
		groupName := strings.SplitN(name, "_", 2)[0]
		if groupName == "" {
			continue
		}
		if _, ok := statsFileByGroup[groupName]; !ok {
			statsFileByGroup[groupName] = name
		}
	}

	groupNames := make([]string, 0, len(statsFileByGroup))
	for groupName := range statsFileByGroup {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	groups := make([]resultcomparisonapi.ResultGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		groups = append(groups, resultcomparisonapi.ResultGroup{
			Name:            groupName,
			TargetUserCount: targetUsers,
			Files:           l.companionFiles(statsFileByGroup[groupName]),
		})
	}
	return groups, nil
}

// companionFiles resolves the optional tables next to a stats file by
// swapping the stats suffix, e.g. pg_100000_1m_stats.csv ->
// pg_100000_1m_failures.csv. Companions that do not exist stay empty.
func (l *directoryLocator) companionFiles(statsFile string) resultcomparisonapi.GroupFiles {
	base := strings.TrimSuffix(statsFile, statsSuffix)
	files := resultcomparisonapi.GroupFiles{
		Stats: filepath.Join(l.resultsDir, statsFile),
	}
	files.Failures = l.existingFile(base + "_failures.csv")
	files.Exceptions = l.existingFile(base + "_exceptions.csv")
	files.History = l.existingFile(base + historySuffix)
	return files
}

func (l *directoryLocator) existingFile(name string) string {
	path := filepath.Join(l.resultsDir, name)
	if exists, err := afero.Exists(l.fs, path); err != nil || !exists {
		return ""
	}
	return path
}

// ParseTargetUserCount extracts the target concurrency from a results
// directory name like "100000_1m". Anything without a leading numeric token
// yields 0.
func ParseTargetUserCount(dirName string) int {
	token := strings.SplitN(dirName, "_", 2)[0]
	count, err := strconv.Atoi(token)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
