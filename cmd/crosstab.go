package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seojinpark/safemap-cli/internal/stats"
)

var crosstabRegion string

var crosstabCmd = &cobra.Command{
	Use:   "crosstab",
	Short: "Major × minor category cross-tabulation for one region",
	RunE: func(cmd *cobra.Command, args []string) error {
		if crosstabRegion == "" {
			return fmt.Errorf("--region is required")
		}
		res, err := runPipeline()
		if err != nil {
			return err
		}
		records := stats.Apply(res.Records, currentFilter(cmd))
		ct := stats.Crosstab(records, crosstabRegion)
		if len(ct.Majors) == 0 {
			fmt.Printf("(no data for region %s)\n", crosstabRegion)
			return nil
		}
		fmt.Printf("%-20s", crosstabRegion)
		for _, minor := range ct.Minors {
			fmt.Printf(" %12s", minor)
		}
		fmt.Println()
		for i, major := range ct.Majors {
			fmt.Printf("%-20s", major)
			for j := range ct.Minors {
				fmt.Printf(" %12d", ct.Cells[i][j])
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	addFilterFlags(crosstabCmd)
	crosstabCmd.Flags().StringVar(&crosstabRegion, "region", "", "region to pivot (required)")
	rootCmd.AddCommand(crosstabCmd)
}
