package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(absentCmd)
	rootCmd.AddCommand(historyCmd)
}

// ─── validate ───────────────────────────────────────────────────────────────

var validateCmd = &cobra.Command{
	Use:   "validate EMPLOYEE_ID START END",
	Short: "Check a vacation period without creating a request",
	Args:  cobra.ExactArgs(3),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	employeeID, err := parseIDArg("employee id", args[0])
	if err != nil {
		return err
	}
	start, err := parseDateArg(args[1])
	if err != nil {
		return err
	}
	end, err := parseDateArg(args[2])
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := svc.ValidateDates(employeeID, start, end)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "valid=%t working_days=%s available=%s\n",
		result.IsValid, result.WorkingDays.String(), result.AvailableDays.String())
	for _, e := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if !result.IsValid {
		return fmt.Errorf("period is not valid")
	}
	return nil
}

// ─── absent ─────────────────────────────────────────────────────────────────

var absentCmd = &cobra.Command{
	Use:   "absent [DATE]",
	Short: "List employees absent on a date (today by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAbsent,
}

func runAbsent(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if len(args) == 1 {
		var err error
		if day, err = parseDateArg(args[0]); err != nil {
			return err
		}
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	entries, err := svc.AbsentOn(day)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nobody is absent")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\trequest #%d\n",
			e.EmployeeID, e.Employee.FullName, e.AbsenceType, e.SourceRequestID)
	}
	return nil
}

// ─── history ────────────────────────────────────────────────────────────────

var historyCmd = &cobra.Command{
	Use:   "history REQUEST_ID",
	Short: "Show the audit trail of a request",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	requestID, err := parseIDArg("request id", args[0])
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	entries, err := svc.RequestHistory(requestID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no history for request %d", requestID)
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s -> %s\tby %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.OldStatus, e.NewStatus, e.PerformedBy)
	}
	return nil
}
