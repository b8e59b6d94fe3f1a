package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fteplan/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a forecast and print the annual summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario()
		if err != nil {
			return err
		}

		log.Info().Str("scenario", sc.Name).Msg("Running forecast")
		res := model.Run(sc.Model)

		fmt.Printf("Scenario: %s\n", sc.Name)
		fmt.Printf("Weighted cost per project: %.2f\n", model.WeightedCostPerProject(sc.Model))
		fmt.Printf("Projects per year: %.1f\n\n", res.ProjectsPerYear)

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Year\tAvg FTE\tMin FTE\tMax FTE\tAvg Research\tAvg Developer")
		for _, row := range res.Annual {
			fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
				row.Year, row.AvgFTE, row.MinFTE, row.MaxFTE, row.AvgResearch, row.AvgDeveloper)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nSteady state (last intake year): avg %.1f, min %.1f, max %.1f FTE\n",
			res.SteadyStateAvg, res.SteadyStateMin, res.SteadyStateMax)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
