package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the distinct regions present after the join",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runPipeline()
		if err != nil {
			return err
		}
		regions := res.Regions()
		if len(regions) == 0 {
			fmt.Println("(no regions)")
			return nil
		}
		for _, r := range regions {
			fmt.Println(r)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
