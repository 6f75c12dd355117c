package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/casepairs/internal/service"
)

var scanLayout layoutFlags

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Show which document pairs would be collected",
	Long: `Scan a dataset root and list every matched judgement/summary pair
without writing the CSV file.

Examples:
  casepairs scan ./dataset
  casepairs scan ./dataset -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanLayout.register(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	c, err := scanLayout.resolve(args)
	if err != nil {
		return err
	}

	svc := newService(c)
	result, err := svc.Build(cmd.Context(), c.DatasetRoot, service.BuildOptions{
		OutputName: c.OutputName,
		DryRun:     true,
	})
	if err != nil {
		return err
	}

	w := out(cmd)
	theme := themeFor(w)

	if len(result.Collected) == 0 {
		fmt.Fprintln(w, "No document pairs found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d document pairs\n\n", len(result.Collected))
	for _, p := range result.Collected {
		judgement, summary := svc.SourcePaths(p)
		fmt.Fprintf(w, "  %s\n  %s\n", judgement, theme.hint("↳ "+summary))
	}

	fmt.Fprintf(w, "\nInitial rows: %d\n", result.Report.Before)
	fmt.Fprintf(w, "Rows after cleaning: %d\n", result.Report.After)
	fmt.Fprintln(w, theme.hint(fmt.Sprintf("Dry run - would write %s", result.OutputPath)))

	if verbose {
		printStats(w, theme, result)
	}
	return nil
}
