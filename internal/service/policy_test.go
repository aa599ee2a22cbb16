package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"vacation-tracker/internal/models"
)

func TestCreatePolicy_DefaultsAccrualAndAudits(t *testing.T) {
	svc, f := newEngine(t)

	policy := &models.VacationPolicy{
		Name:             "Стандарт 2026",
		Year:             2026,
		TotalDaysPerYear: decimal.NewFromInt(28),
		CarryOverMaxDays: decimal.NewFromInt(5),
		IsDefault:        true,
	}
	if err := svc.CreatePolicy(policy, "cli"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if policy.ID == 0 {
		t.Fatal("policy id not assigned")
	}
	if policy.AccrualType != models.AccrualAnnual {
		t.Errorf("accrual = %s, want annual", policy.AccrualType)
	}

	got, err := svc.PolicyForYear(2026)
	if err != nil || got == nil || got.ID != policy.ID {
		t.Fatalf("PolicyForYear = %+v, %v", got, err)
	}

	entries, _ := f.audit.ListByEntity(entityVacationPolicy, policy.ID)
	if len(entries) != 1 || entries[0].Action != models.AuditPolicyCreated {
		t.Fatalf("audit entries = %+v", entries)
	}
}

func TestCreatePolicy_RejectsInvalid(t *testing.T) {
	svc, f := newEngine(t)
	before := len(f.policies.policies)

	err := svc.CreatePolicy(&models.VacationPolicy{
		Name:             "Ошибка",
		Year:             2026,
		TotalDaysPerYear: decimal.NewFromInt(-1),
	}, "cli")
	if !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("err = %v, want ErrInvalidPolicy", err)
	}
	if len(f.policies.policies) != before {
		t.Error("invalid policy must not be stored")
	}
}
