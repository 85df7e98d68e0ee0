package resultcomparisonlib

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

// LoadRawTables reads every companion table of a result group. Absent files
// (empty path or file removed since discovery) produce nil tables; only a
// structurally broken CSV is an error, because scoring a group from a
// half-read table would silently skew the comparison.
func LoadRawTables(fs afero.Fs, group resultcomparisonapi.ResultGroup) (resultcomparisonapi.RawRecordTables, error) {
	tables := resultcomparisonapi.RawRecordTables{}

	header, rows, err := readCSVTable(fs, group.Files.Stats)
	if err != nil {
		return tables, fmt.Errorf("failed to read stats for group %s: %w", group.Name, err)
	}
	for _, row := range rows {
		tables.Stats = append(tables.Stats, resultcomparisonapi.StatsRow{
			Name:                header.text(row, "Name"),
			RequestCount:        header.integer(row, "Request Count"),
			FailureCount:        header.integer(row, "Failure Count"),
			MedianResponseTime:  header.float(row, "Median Response Time"),
			AverageResponseTime: header.float(row, "Average Response Time"),
			MinResponseTime:     header.float(row, "Min Response Time"),
			MaxResponseTime:     header.float(row, "Max Response Time"),
			RequestsPerSec:      header.float(row, "Requests/s"),
			P50:                 header.float(row, "50%"),
			P90:                 header.float(row, "90%"),
			P95:                 header.float(row, "95%"),
			P99:                 header.float(row, "99%"),
		})
	}

	header, rows, err = readCSVTable(fs, group.Files.History)
	if err != nil {
		return tables, fmt.Errorf("failed to read stats history for group %s: %w", group.Name, err)
	}
	for _, row := range rows {
		tables.History = append(tables.History, resultcomparisonapi.HistorySample{
			Timestamp:            header.integer(row, "Timestamp"),
			UserCount:            int(header.integer(row, "User Count")),
			RequestsPerSec:       header.float(row, "Requests/s"),
			TotalAvgResponseTime: header.float(row, "Total Average Response Time"),
		})
	}

	header, rows, err = readCSVTable(fs, group.Files.Failures)
	if err != nil {
		return tables, fmt.Errorf("failed to read failures for group %s: %w", group.Name, err)
	}
	for _, row := range rows {
		tables.Failures = append(tables.Failures, resultcomparisonapi.FailureRow{
			Method:      header.text(row, "Method"),
			Name:        header.text(row, "Name"),
			Error:       header.text(row, "Error"),
			Occurrences: header.integer(row, "Occurrences"),
		})
	}

	header, rows, err = readCSVTable(fs, group.Files.Exceptions)
	if err != nil {
		return tables, fmt.Errorf("failed to read exceptions for group %s: %w", group.Name, err)
	}
	for _, row := range rows {
		tables.Exceptions = append(tables.Exceptions, resultcomparisonapi.ExceptionRow{
			Count:   header.integer(row, "Count"),
			Message: header.text(row, "Message"),
		})
	}

	return tables, nil
}

type headerIndex map[string]int

// readCSVTable loads one CSV file into a header index plus data rows. Missing
// files are soft: they return empty results so the caller's fields default
// to zero.
func readCSVTable(fs afero.Fs, path string) (headerIndex, [][]string, error) {
	if path == "" {
		return nil, nil, nil
	}
	file, err := fs.Open(path)
	if os.IsNotExist(err) {
		logrus.WithField("file", path).Warn("result table disappeared after discovery, treating as absent")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.WithField("file", path).Warn("failed to close result table")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := headerIndex{}
	for i, column := range records[0] {
		header[column] = i
	}
	return header, records[1:], nil
}

func (h headerIndex) text(row []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// float parses a numeric cell. Locust writes "N/A" for percentiles it could
// not compute, so unparseable cells degrade to 0 instead of failing the load.
func (h headerIndex) float(row []string, column string) float64 {
	value, err := strconv.ParseFloat(h.text(row, column), 64)
	if err != nil {
		return 0
	}
	return value
}

func (h headerIndex) integer(row []string, column string) int64 {
	cell := h.text(row, column)
	value, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		// Locust occasionally emits counts in float notation.
		if f, ferr := strconv.ParseFloat(cell, 64); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return value
}
