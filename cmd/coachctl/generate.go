package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/application/services"
	"github.com/zatekoja/coachplan/internal/domain/entities"
	"github.com/zatekoja/coachplan/internal/infrastructure/clients/deepseek"
)

var (
	genWeek     int64
	genProfile  entities.StudentProfile
	genFocus    string
	genDays     int
	genNotes    string
	genCalories int
)

var generateCmd = &cobra.Command{
	Use:       "generate workout|diet",
	Short:     "Run a plan generation synchronously",
	ValidArgs: []string{string(entities.PlanKindWorkout), string(entities.PlanKindDiet)},
	Long: `Run the same generation a worker runs after an API request, in the foreground.
The week ends in READY or ERROR exactly as it would through the API. An existing
plan is kept; remove it through the API to regenerate.

EXAMPLES:

  coachctl generate workout --week 4 --level intermedio --objective hipertrofia --days 4
  coachctl generate diet --week 4 --weight 72.5 --calories 2300 --notes "sin lactosa"`,
	Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if genWeek <= 0 {
			return fmt.Errorf("--week is required")
		}
		kind := entities.PlanKind(args[0])

		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		orchestrator := services.NewGenerationOrchestrator(services.OrchestratorDeps{
			Weeks:      s.weeks,
			Workouts:   s.workouts,
			Diets:      s.diets,
			Catalog:    s.catalog,
			Generator:  deepseek.NewClient(&cfg.Generator),
			RunTimeout: cfg.Worker.RunTimeout,
		})

		gc := generationContext(cmd)
		if err := s.weeks.SetStatus(ctx, genWeek, kind, entities.PlanStatusGenerating); err != nil {
			return err
		}

		if kind == entities.PlanKindDiet {
			err = orchestrator.RunDiet(ctx, genWeek, gc)
		} else {
			err = orchestrator.RunWorkout(ctx, genWeek, gc)
		}
		if err != nil {
			return fmt.Errorf("%s generation failed: %w", kind, err)
		}

		week, err := s.weeks.GetByID(ctx, genWeek)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "week %d %s %s\n", genWeek, kind, statusColor(week.Status(kind)))
		return nil
	},
}

func generationContext(cmd *cobra.Command) entities.GenerationContext {
	gc := entities.GenerationContext{
		Profile:     genProfile,
		FocusMuscle: strings.TrimSpace(genFocus),
		Notes:       strings.TrimSpace(genNotes),
		DietNotes:   strings.TrimSpace(genNotes),
	}
	if cmd.Flags().Changed("days") {
		days := genDays
		gc.DaysPerWeek = &days
	}
	if cmd.Flags().Changed("calories") {
		calories := genCalories
		gc.DietCalories = &calories
	}
	return gc
}

func parseWeekArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid week id %q", raw)
	}
	return id, nil
}

func init() {
	f := generateCmd.Flags()
	f.Int64VarP(&genWeek, "week", "w", 0, "week id")
	f.IntVar(&genProfile.Age, "age", 0, "student age")
	f.Float64Var(&genProfile.WeightKG, "weight", 0, "student weight in kg")
	f.IntVar(&genProfile.HeightCM, "height", 0, "student height in cm")
	f.StringVarP(&genProfile.Level, "level", "l", "", "student level")
	f.StringVarP(&genProfile.Objective, "objective", "o", "", "training objective")
	f.StringVar(&genFocus, "focus", "", "muscle group to emphasise (workout)")
	f.IntVarP(&genDays, "days", "d", 3, "training days per week (workout)")
	f.StringVar(&genNotes, "notes", "", "coach notes for the generator")
	f.IntVar(&genCalories, "calories", 0, "daily calorie target (diet)")
	rootCmd.AddCommand(generateCmd)
}
