package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/seojinpark/safemap-cli/internal/stats"
)

var summaryTop int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Per-region totals with share of total",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runPipeline()
		if err != nil {
			return err
		}
		records := stats.Apply(res.Records, currentFilter(cmd))
		rows := stats.ByRegion(records)
		if len(rows) == 0 {
			fmt.Println("(no data matches the current filters)")
			return nil
		}
		maxRow, minRow := stats.Extremes(rows)

		// Display order: worst regions first, like the dashboard table.
		ordered := make([]stats.AggregateRow, len(rows))
		copy(ordered, rows)
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].TotalCount != ordered[j].TotalCount {
				return ordered[i].TotalCount > ordered[j].TotalCount
			}
			return ordered[i].Region < ordered[j].Region
		})
		if summaryTop > 0 && len(ordered) > summaryTop {
			ordered = ordered[:summaryTop]
		}

		showRate := false
		for _, r := range ordered {
			if r.RatePer10k > 0 {
				showRate = true
				break
			}
		}

		fmt.Printf("%-14s %10s %8s %10s %11s", "Region", "Total", "Share%", "Lat", "Lon")
		if showRate {
			fmt.Printf(" %10s", "Per10k")
		}
		fmt.Println()
		for _, r := range ordered {
			fmt.Printf("%-14s %10.0f %7.1f%% %10.4f %11.4f", r.Region, r.TotalCount, r.ShareOfTotalPct, r.Latitude, r.Longitude)
			if showRate {
				fmt.Printf(" %10.2f", r.RatePer10k)
			}
			if maxRow != nil && r.Region == maxRow.Region {
				fmt.Print("  ▲ highest")
			} else if minRow != nil && r.Region == minRow.Region {
				fmt.Print("  ▼ lowest")
			}
			fmt.Println()
		}
		if showRate {
			fmt.Printf("\nMean rate per 10k across regions: %.2f\n", stats.MeanRate(rows))
		}
		return nil
	},
}

func init() {
	addFilterFlags(summaryCmd)
	summaryCmd.Flags().StringVar(&filterRegion, "region", "", "restrict to one region")
	summaryCmd.Flags().IntVar(&summaryTop, "top", 0, "show only the N regions with the highest totals")
	rootCmd.AddCommand(summaryCmd)
}
