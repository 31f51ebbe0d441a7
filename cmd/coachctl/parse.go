package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/domain/entities"
)

var (
	parseText    bool
	parseResolve bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [FILE]",
	Short: "Parse generator output into a plan",
	Long: `Parse raw generator output (or a legacy text plan with --text) and print the
unresolved plan as JSON. Reads stdin when FILE is omitted or "-".

With --resolve the plan is matched against the catalog and the names that
are not in the catalog are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		plan := parseOutput(raw, parseText)
		if len(plan) == 0 {
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "no days found in input")
		}

		if !parseResolve {
			return printJSON(cmd.OutOrStdout(), plan)
		}

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
		resolved, missing := planning.ResolveByName(plan, catalog, true)

		fmt.Fprint(cmd.OutOrStdout(), planning.RenderWorkout(resolved))
		fmt.Fprintln(cmd.OutOrStdout())
		faint := color.New(color.Faint)
		for _, name := range missing {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("missing"), faint.Sprint(name))
		}
		return nil
	},
}

func parseOutput(raw string, legacyText bool) entities.UnresolvedPlan {
	if legacyText {
		return planning.ParseText(raw)
	}
	return planning.ParseStructured(raw)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	parseCmd.Flags().BoolVar(&parseText, "text", false, "input is a legacy text plan")
	parseCmd.Flags().BoolVar(&parseResolve, "resolve", false, "resolve exercise names against the catalog")
	rootCmd.AddCommand(parseCmd)
}
