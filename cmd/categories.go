package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seojinpark/safemap-cli/internal/stats"
)

var categoriesRegion string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Major-category totals for one region",
	RunE: func(cmd *cobra.Command, args []string) error {
		if categoriesRegion == "" {
			return fmt.Errorf("--region is required")
		}
		res, err := runPipeline()
		if err != nil {
			return err
		}
		records := stats.Apply(res.Records, currentFilter(cmd))
		totals := stats.ByMajorCategory(records, categoriesRegion)
		if len(totals) == 0 {
			fmt.Printf("(no data for region %s)\n", categoriesRegion)
			return nil
		}
		fmt.Printf("%s\n", categoriesRegion)
		for _, t := range totals {
			fmt.Printf("  %-20s %10.0f\n", t.CategoryMajor, t.TotalCount)
		}
		return nil
	},
}

func init() {
	addFilterFlags(categoriesCmd)
	categoriesCmd.Flags().StringVar(&categoriesRegion, "region", "", "region to break down (required)")
	rootCmd.AddCommand(categoriesCmd)
}
