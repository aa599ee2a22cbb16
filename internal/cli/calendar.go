package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vacation-tracker/pkg/weekends"
)

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.AddCommand(calendarLoadCmd)
	calendarCmd.AddCommand(calendarCountCmd)

	calendarLoadCmd.Flags().Bool("dry-run", false, "Parse and summarize the file without writing")
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Production calendar",
}

// ─── calendar load ──────────────────────────────────────────────────────────

var calendarLoadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Load a yearly production calendar from JSON",
	Long: `Load a production calendar in the weekends JSON format. Rows of the
calendar year for the configured region are replaced atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalendarLoad,
}

func runCalendarLoad(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if dryRun {
		cal, err := weekends.ParseWeekendsJSON(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cal.Summary())
		return nil
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	count, err := svc.LoadCalendar(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d calendar days from %s\n", count, args[0])
	return nil
}

// ─── calendar count ─────────────────────────────────────────────────────────

var calendarCountCmd = &cobra.Command{
	Use:   "count START END",
	Short: "Count working days in an inclusive date range",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalendarCount,
}

func runCalendarCount(cmd *cobra.Command, args []string) error {
	start, err := parseDateArg(args[0])
	if err != nil {
		return err
	}
	end, err := parseDateArg(args[1])
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	days, err := svc.CountWorkingDays(start, end)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", days.String())
	return nil
}
