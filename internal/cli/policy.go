package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"vacation-tracker/internal/models"
)

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyCreateCmd)
	policyCmd.AddCommand(policyShowCmd)

	policyCreateCmd.Flags().String("name", "", "Policy name")
	policyCreateCmd.Flags().String("total", "28", "Total days per year")
	policyCreateCmd.Flags().String("carry-over", "0", "Maximum days carried over from the previous year")
	policyCreateCmd.Flags().Bool("default", false, "Mark as the default policy of the year")
	policyCreateCmd.Flags().String("by", "cli", "Actor recorded in the audit log")
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Yearly vacation policies",
}

var policyCreateCmd = &cobra.Command{
	Use:   "create YEAR",
	Short: "Create a vacation policy for a year",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolicyCreate,
}

func runPolicyCreate(cmd *cobra.Command, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	totalStr, _ := cmd.Flags().GetString("total")
	carryStr, _ := cmd.Flags().GetString("carry-over")
	isDefault, _ := cmd.Flags().GetBool("default")
	by, _ := cmd.Flags().GetString("by")

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return fmt.Errorf("invalid --total %q: %w", totalStr, err)
	}
	carry, err := decimal.NewFromString(carryStr)
	if err != nil {
		return fmt.Errorf("invalid --carry-over %q: %w", carryStr, err)
	}
	if name == "" {
		name = fmt.Sprintf("Отпуск %d", year)
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	policy := &models.VacationPolicy{
		Name:             name,
		Year:             year,
		TotalDaysPerYear: total,
		CarryOverMaxDays: carry,
		AccrualType:      models.AccrualAnnual,
		IsDefault:        isDefault,
	}
	if err := svc.CreatePolicy(policy, by); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created policy #%d %q for %d: %s days, carry-over up to %s\n",
		policy.ID, policy.Name, policy.Year, policy.TotalDaysPerYear.String(), policy.CarryOverMaxDays.String())
	return nil
}

var policyShowCmd = &cobra.Command{
	Use:   "show YEAR",
	Short: "Show the policy balances of a year are created from",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolicyShow,
}

func runPolicyShow(cmd *cobra.Command, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	svc, closeDB, err := openService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	policy, err := svc.PolicyForYear(year)
	if err != nil {
		return err
	}
	if policy == nil {
		return fmt.Errorf("no policy for %d", year)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "#%d %q year=%d total=%s carry_over_max=%s accrual=%s default=%t\n",
		policy.ID, policy.Name, policy.Year, policy.TotalDaysPerYear.String(),
		policy.CarryOverMaxDays.String(), policy.AccrualType, policy.IsDefault)
	return nil
}
