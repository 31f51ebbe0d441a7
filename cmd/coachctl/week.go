package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

var (
	weekStudent int64
	weekStart   string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage training weeks",
}

var weekCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new active week for a student",
	Long: `Create a seven day week starting on --start (default: next Monday).
The student's previous active week is deactivated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if weekStudent <= 0 {
			return fmt.Errorf("--student is required")
		}
		start, err := weekStartDate(weekStart, time.Now())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		week := &entities.Week{
			StudentID: weekStudent,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
		}
		if err := s.weeks.Create(ctx, week); err != nil {
			return err
		}

		color.New(color.FgGreen).Printf("✓ week %d", week.ID)
		fmt.Printf(" for student %d, %s to %s\n",
			week.StudentID, week.StartDate.Format(time.DateOnly), week.EndDate.Format(time.DateOnly))
		return nil
	},
}

var weekShowCmd = &cobra.Command{
	Use:   "show WEEK_ID",
	Short: "Show the plan status of a week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekID, err := parseWeekArg(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		week, err := s.weeks.GetByID(ctx, weekID)
		if err != nil {
			return err
		}

		fmt.Printf("week %d  student %d  %s to %s\n", week.ID, week.StudentID,
			week.StartDate.Format(time.DateOnly), week.EndDate.Format(time.DateOnly))
		fmt.Printf("  workout  %s\n", statusColor(week.WorkoutStatus))
		fmt.Printf("  diet     %s\n", statusColor(week.DietStatus))
		return nil
	},
}

// weekStartDate parses a YYYY-MM-DD date, or picks the Monday after now when raw is empty.
func weekStartDate(raw string, now time.Time) (time.Time, error) {
	if raw != "" {
		start, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --start %q, expected YYYY-MM-DD", raw)
		}
		return start, nil
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset), nil
}

func statusColor(status entities.PlanStatus) string {
	switch status {
	case entities.PlanStatusReady:
		return color.GreenString(string(status))
	case entities.PlanStatusError:
		return color.RedString(string(status))
	case entities.PlanStatusGenerating:
		return color.YellowString(string(status))
	default:
		return color.New(color.Faint).Sprint(string(status))
	}
}

func init() {
	weekCreateCmd.Flags().Int64VarP(&weekStudent, "student", "s", 0, "student id")
	weekCreateCmd.Flags().StringVar(&weekStart, "start", "", "first day of the week (YYYY-MM-DD)")
	weekCmd.AddCommand(weekCreateCmd, weekShowCmd)
	rootCmd.AddCommand(weekCmd)
}
