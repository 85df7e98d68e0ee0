package resultcomparisonlib

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

var knownDimensions = map[string]bool{
	resultcomparisonapi.DimensionScalability: true,
	resultcomparisonapi.DimensionThroughput:  true,
	resultcomparisonapi.DimensionLatency:     true,
	resultcomparisonapi.DimensionReliability: true,
	resultcomparisonapi.DimensionConsistency: true,
}

// DefaultWeightConfiguration returns the standard dimension weights.
// Scalability dominates because sustaining the target user count is the
// strongest signal of real-world capacity.
func DefaultWeightConfiguration() resultcomparisonapi.WeightConfiguration {
	return resultcomparisonapi.WeightConfiguration{
		resultcomparisonapi.DimensionScalability: 0.35,
		resultcomparisonapi.DimensionThroughput:  0.25,
		resultcomparisonapi.DimensionLatency:     0.20,
		resultcomparisonapi.DimensionReliability: 0.15,
		resultcomparisonapi.DimensionConsistency: 0.05,
	}
}

// ParseWeightOverride parses a YAML or JSON mapping of dimension name to
// weight and applies it over previous. A partial override replaces only the
// named dimensions; an unknown dimension name or a non-numeric weight rejects
// the whole override so a typo cannot silently zero a dimension. The sum of
// the resulting weights is deliberately not validated.
func ParseWeightOverride(raw []byte, previous resultcomparisonapi.WeightConfiguration) (resultcomparisonapi.WeightConfiguration, error) {
	override := map[string]float64{}
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("weight override is not a mapping of dimension to number: %w", err)
	}
	if len(override) == 0 {
		return nil, fmt.Errorf("weight override contains no dimensions")
	}
	for name := range override {
		if !knownDimensions[name] {
			return nil, fmt.Errorf("unknown score dimension %q in weight override", name)
		}
	}

	merged := resultcomparisonapi.WeightConfiguration{}
	for name, weight := range previous {
		merged[name] = weight
	}
	for name, weight := range override {
		merged[name] = weight
	}
	return merged, nil
}

// LoadWeightConfiguration reads a weight override file and applies it over
// previous. Any failure (unreadable file, malformed mapping) is surfaced as a
// warning and previous is kept unchanged, so a bad override never aborts a
// comparison.
func LoadWeightConfiguration(fs afero.Fs, path string, previous resultcomparisonapi.WeightConfiguration, logger *logrus.Entry) resultcomparisonapi.WeightConfiguration {
	if path == "" {
		return previous
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	raw, err := afero.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		logger.WithError(err).WithField("file", path).Warn("failed to read weight override, keeping configured weights")
		return previous
	}
	if os.IsNotExist(err) {
		logger.WithField("file", path).Warn("weight override file does not exist, keeping configured weights")
		return previous
	}

	merged, err := ParseWeightOverride(raw, previous)
	if err != nil {
		logger.WithError(err).WithField("file", path).Warn("malformed weight override, keeping configured weights")
		return previous
	}
	logger.WithField("weights", merged).Debug("applied weight override")
	return merged
}
