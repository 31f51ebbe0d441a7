package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/application/planning"
)

var (
	fallbackLevel string
	fallbackDays  int
	fallbackFocus string
)

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Print the deterministic fallback workout",
	Long: `Build the workout used when the generator is unavailable, from the current
catalog, and print it in the plan text format.

EXAMPLES:

  coachctl fallback                              # 3 days, no level filter
  coachctl fallback --level intermedio --days 5
  coachctl fallback --focus espalda`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		catalog, err := s.catalog.ListAll(ctx)
		if err != nil {
			return err
		}

		var days *int
		if cmd.Flags().Changed("days") {
			days = &fallbackDays
		}

		plan := planning.BuildFallbackPlan(catalog, fallbackLevel, days, fallbackFocus)
		if len(plan) == 0 {
			return fmt.Errorf("catalog is empty, run coachctl seed first")
		}
		fmt.Fprint(cmd.OutOrStdout(), planning.RenderWorkout(plan))
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	fallbackCmd.Flags().StringVarP(&fallbackLevel, "level", "l", "", "student level (principiante, intermedio, avanzado)")
	fallbackCmd.Flags().IntVarP(&fallbackDays, "days", "d", 3, "training days per week")
	fallbackCmd.Flags().StringVarP(&fallbackFocus, "focus", "f", "", "muscle group to put first")
	rootCmd.AddCommand(fallbackCmd)
}
