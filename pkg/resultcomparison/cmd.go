package resultcomparison

import (
	"github.com/spf13/cobra"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison/resultcomparisonanalyzer"
)

func NewResultComparisonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "db-comparison-report",
		Long: `Commands for comparing the load-test results of different backing stores`,
	}

	cmd.AddCommand(resultcomparisonanalyzer.NewComparisonReportCommand())

	return cmd
}
