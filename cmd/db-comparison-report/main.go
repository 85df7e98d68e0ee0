// db-comparison-report ranks the backing stores of one load-test comparison
// run by a weighted performance score computed from their result CSVs.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/pflag"

	"github.com/dbbench/comparison-tools/pkg/resultcomparison"
)

func main() {
	cmd := resultcomparison.NewResultComparisonCommand()
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
