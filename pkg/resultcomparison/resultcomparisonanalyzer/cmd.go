package resultcomparisonanalyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonapi"
	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonlib"
	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonreport"
)

// htmlReportFileName matches the path the load-test scripts link to from
// their run summaries.
const htmlReportFileName = "comparison_report.html"

type ComparisonReportFlags struct {
	ResultsDir  string
	WeightsFile string
	WriteHTML   bool
	JSONFile    string
	Quiet       bool
}

func NewComparisonReportFlags() *ComparisonReportFlags {
	return &ComparisonReportFlags{}
}

func (f *ComparisonReportFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ResultsDir, "results-dir", f.ResultsDir, "directory containing the per-group result CSVs; its leading numeric token is the target user count")
	fs.StringVar(&f.WeightsFile, "weights", f.WeightsFile, "optional YAML/JSON file mapping score dimensions to weights, overriding the defaults")
	fs.BoolVar(&f.WriteHTML, "html", f.WriteHTML, "write comparison_report.html into the results directory")
	fs.StringVar(&f.JSONFile, "json", f.JSONFile, "write the scored summary as JSON to this path")
	fs.BoolVar(&f.Quiet, "quiet", f.Quiet, "suppress the console ranking table")
}

func (f *ComparisonReportFlags) Validate() error {
	if f.ResultsDir == "" {
		return fmt.Errorf("must provide --results-dir [directory] to compare")
	}
	return nil
}

func (f *ComparisonReportFlags) ToOptions(_ context.Context) (*ComparisonReportOptions, error) {
	fs := afero.NewOsFs()

	if info, err := fs.Stat(f.ResultsDir); err != nil {
		return nil, fmt.Errorf("failed to stat results directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("results path %s is not a directory", f.ResultsDir)
	}

	weights := resultcomparisonlib.LoadWeightConfiguration(fs, f.WeightsFile, resultcomparisonlib.DefaultWeightConfiguration(), nil)

	return &ComparisonReportOptions{
		fs:         fs,
		resultsDir: f.ResultsDir,
		weights:    weights,
		writeHTML:  f.WriteHTML,
		jsonFile:   f.JSONFile,
		quiet:      f.Quiet,
	}, nil
}

type ComparisonReportOptions struct {
	fs         afero.Fs
	resultsDir string
	weights    resultcomparisonapi.WeightConfiguration
	writeHTML  bool
	jsonFile   string
	quiet      bool
}

func (o *ComparisonReportOptions) Run(ctx context.Context) error {
	comparator := NewResultComparator(o.fs, o.resultsDir, o.weights)
	comparison, err := comparator.Compare(ctx)
	if errors.Is(err, ErrNoResultGroups) {
		logrus.WithField("results-dir", o.resultsDir).Warn("no result groups found, nothing to compare")
		return nil
	}
	if err != nil {
		return err
	}

	if !o.quiet {
		resultcomparisonreport.WriteRankingTable(os.Stdout, comparison)
		resultcomparisonreport.WriteLeaderSummary(os.Stdout, comparison)
	}

	if o.writeHTML {
		reportPath := filepath.Join(o.resultsDir, htmlReportFileName)
		if err := resultcomparisonreport.WriteHTMLReport(o.fs, reportPath, comparison); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
		logrus.WithField("report", reportPath).Info("wrote HTML comparison report")
	}

	if o.jsonFile != "" {
		if err := resultcomparisonreport.WriteJSONSummary(o.fs, o.jsonFile, comparison); err != nil {
			return fmt.Errorf("failed to write JSON summary: %w", err)
		}
		logrus.WithField("summary", o.jsonFile).Info("wrote JSON summary")
	}

	return nil
}

func NewComparisonReportCommand() *cobra.Command {
	f := NewComparisonReportFlags()

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Rank load-test result groups by weighted performance score",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := f.Validate(); err != nil {
				logrus.WithError(err).Fatal("Flags are invalid")
			}
			o, err := f.ToOptions(ctx)
			if err != nil {
				logrus.WithError(err).Fatal("Failed to build runtime options")
			}

			if err := o.Run(ctx); err != nil {
				logrus.WithError(err).Fatal("Command failed")
			}

			return nil
		},

		Args: cobra.NoArgs,
	}

	f.BindFlags(cmd.Flags())
	return cmd
}
