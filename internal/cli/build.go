package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/casepairs/internal/service"
)

var (
	buildOutput string
	buildLayout layoutFlags
)

var buildCmd = &cobra.Command{
	Use:   "build [root]",
	Short: "Collect, clean and write the dataset CSV",
	Long: `Build the judgement/summary dataset for a root directory.

Every <root>/.../judgement/<name>.txt with a matching
<root>/.../summary/<name>.txt becomes one row. Pairs where either side is
empty or whitespace-only are dropped. The result is written, with every field
quoted, to <root>/judgement_summary.csv, replacing any previous file.

Examples:
  casepairs build ./dataset
  casepairs build ./dataset --output pairs.csv
  CASEPAIRS_DATASET_ROOT=./dataset casepairs build
  casepairs build ./corpus --judgement-dir rulings --summary-dir digests`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file name inside root (default judgement_summary.csv)")
	buildLayout.register(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	c, err := buildLayout.resolve(args)
	if err != nil {
		return err
	}
	if buildOutput != "" {
		c.OutputName = buildOutput
		if err := c.Validate(); err != nil {
			return err
		}
	}

	result, err := newService(c).Build(cmd.Context(), c.DatasetRoot, service.BuildOptions{
		OutputName: c.OutputName,
	})
	if err != nil {
		return err
	}

	w := out(cmd)
	theme := themeFor(w)
	fmt.Fprintf(w, "Initial rows: %d\n", result.Report.Before)
	fmt.Fprintf(w, "Rows after cleaning: %d\n", result.Report.After)
	fmt.Fprintln(w, theme.success(fmt.Sprintf("Saved cleaned dataset to: %s", result.OutputPath)))

	if verbose {
		printStats(w, theme, result)
	}
	return nil
}
