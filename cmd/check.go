package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the pipeline and report join coverage diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runPipeline()
		if err != nil {
			return err
		}
		fmt.Printf("Run            : %s\n", res.RunID)
		fmt.Printf("Crime rows     : %d\n", res.CrimeRows)
		fmt.Printf("Joined records : %d\n", len(res.Records))
		fmt.Printf("Centroids      : %d\n", len(res.Centroids))
		if len(res.DroppedRegions) > 0 {
			fmt.Printf("Dropped regions: %d\n", len(res.DroppedRegions))
			for _, r := range res.DroppedRegions {
				fmt.Printf("  - %s\n", r)
			}
		} else {
			fmt.Println("Dropped regions: none")
		}
		for _, w := range res.Warnings {
			fmt.Printf("Warning        : %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
