package resultcomparisonreport

import (
	"encoding/json"
	"time"

	"github.com/spf13/afero"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
)

type jsonSummary struct {
	GeneratedAt time.Time `json:"generatedAt"`
	*resultcomparisonapi.Comparison
}

// WriteJSONSummary writes the scored comparison as indented JSON so other
// tooling can consume the ranking without re-running the analysis.
func WriteJSONSummary(fs afero.Fs, path string, comparison *resultcomparisonapi.Comparison) error {
	raw, err := json.MarshalIndent(jsonSummary{
		GeneratedAt: time.Now().UTC(),
		Comparison:  comparison,
	}, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, raw, 0644)
}
