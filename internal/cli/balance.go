package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/service"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceShowCmd)
	balanceCmd.AddCommand(balanceRecalcCmd)
	balanceCmd.AddCommand(balanceBulkAssignCmd)

	balanceBulkAssignCmd.Flags().String("by", "cli", "Actor recorded in the audit log")
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Employee vacation balances",
}

// ─── balance show ───────────────────────────────────────────────────────────

var balanceShowCmd = &cobra.Command{
	Use:   "show EMPLOYEE_ID [YEAR]",
	Short: "Show (creating if needed) an employee balance",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runBalanceShow,
}

func runBalanceShow(cmd *cobra.Command, args []string) error {
	employeeID, err := parseIDArg("employee id", args[0])
	if err != nil {
		return err
	}
	year := time.Now().Year()
	if len(args) == 2 {
		if year, err = parseYearArg(args[1]); err != nil {
			return err
		}
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	balance, err := svc.GetBalance(employeeID, year)
	if err != nil {
		return err
	}
	if balance == nil {
		return fmt.Errorf("no balance for employee %d in %d: missing policy or inactive employee", employeeID, year)
	}
	printBalance(cmd, balance)
	return nil
}

// ─── balance recalc ─────────────────────────────────────────────────────────

var balanceRecalcCmd = &cobra.Command{
	Use:   "recalc EMPLOYEE_ID YEAR",
	Short: "Recompute used days from approved requests",
	Args:  cobra.ExactArgs(2),
	RunE:  runBalanceRecalc,
}

func runBalanceRecalc(cmd *cobra.Command, args []string) error {
	employeeID, err := parseIDArg("employee id", args[0])
	if err != nil {
		return err
	}
	year, err := parseYearArg(args[1])
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	balance, err := svc.RecalculateBalance(employeeID, year)
	if err != nil {
		return err
	}
	if balance == nil {
		return fmt.Errorf("no balance for employee %d in %d", employeeID, year)
	}
	printBalance(cmd, balance)
	return nil
}

// ─── balance bulk-assign ────────────────────────────────────────────────────

var balanceBulkAssignCmd = &cobra.Command{
	Use:   "bulk-assign POLICY_ID YEAR",
	Short: "Create balances for every active employee without one",
	Args:  cobra.ExactArgs(2),
	RunE:  runBalanceBulkAssign,
}

func runBalanceBulkAssign(cmd *cobra.Command, args []string) error {
	policyID, err := parseIDArg("policy id", args[0])
	if err != nil {
		return err
	}
	year, err := parseYearArg(args[1])
	if err != nil {
		return err
	}
	by, _ := cmd.Flags().GetString("by")

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := svc.BulkAssign(policyID, year, by)
	if errors.Is(err, service.ErrPolicyNotFound) {
		return fmt.Errorf("policy %d not found", policyID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %d\nSkipped: %d\nTotal:   %d\n",
		result.Created, result.Skipped, result.Total)
	return nil
}

func printBalance(cmd *cobra.Command, b *models.VacationBalance) {
	fmt.Fprintf(cmd.OutOrStdout(), "employee=%d year=%d policy=%d\n", b.EmployeeID, b.Year, b.PolicyID)
	fmt.Fprintf(cmd.OutOrStdout(), "allocated=%s used=%s remaining=%s carry_over=%s\n",
		b.AllocatedDays.String(), b.UsedDays.String(), b.RemainingDays.String(), b.CarryOverDays.String())
}
