package service

import (
	"testing"

	"vacation-tracker/internal/models"
	"vacation-tracker/pkg/logger"
)

func newBalanceService(f *fixture) *BalanceService {
	return NewBalanceService(f.repo, nil, logger.NewNop())
}

func TestGetOrCreateWithoutPreviousBalance(t *testing.T) {
	f := newFixture()
	f.addEmployee(1, models.RoleEmployee, nil)
	f.addPolicy(2025, 22, 5)
	svc := newBalanceService(f)

	b, err := svc.GetOrCreate(1, 2025)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if b == nil {
		t.Fatal("expected balance")
	}
	if !b.AllocatedDays.Equal(dec(22)) {
		t.Errorf("allocated = %s, want 22", b.AllocatedDays)
	}
	if !b.UsedDays.IsZero() || !b.CarryOverDays.IsZero() {
		t.Errorf("used = %s carry = %s, want 0", b.UsedDays, b.CarryOverDays)
	}
	if !b.IsConsistent() {
		t.Error("allocated != remaining + used")
	}
}

func TestGetOrCreateCarryOver(t *testing.T) {
	tests := []struct {
		name      string
		remaining int64
		want      int64
	}{
		{"capped by policy", 8, 27},
		{"below cap", 3, 25},
		{"negative previous remaining", -4, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.addEmployee(1, models.RoleEmployee, nil)
			f.addPolicy(2025, 22, 5)
			f.addBalance(1, 2024, 20, 20-tt.remaining)
			svc := newBalanceService(f)

			b, err := svc.GetOrCreate(1, 2025)
			if err != nil {
				t.Fatalf("GetOrCreate: %v", err)
			}
			if !b.AllocatedDays.Equal(dec(tt.want)) {
				t.Errorf("allocated = %s, want %d", b.AllocatedDays, tt.want)
			}
			if b.CarryOverDays.GreaterThan(dec(5)) {
				t.Errorf("carry-over %s exceeds policy max", b.CarryOverDays)
			}
		})
	}
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	f := newFixture()
	f.addEmployee(1, models.RoleEmployee, nil)
	f.addPolicy(2025, 22, 5)
	f.addBalance(1, 2025, 30, 4)
	svc := newBalanceService(f)

	b, err := svc.GetOrCreate(1, 2025)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !b.AllocatedDays.Equal(dec(30)) || !b.RemainingDays.Equal(dec(26)) {
		t.Errorf("existing balance changed: %+v", b)
	}
	if len(f.balances.balances) != 1 {
		t.Errorf("balances = %d, want 1", len(f.balances.balances))
	}
}

func TestGetOrCreateNotFound(t *testing.T) {
	t.Run("no policy for year", func(t *testing.T) {
		f := newFixture()
		f.addEmployee(1, models.RoleEmployee, nil)
		f.addPolicy(2024, 22, 5)

		b, err := newBalanceService(f).GetOrCreate(1, 2025)
		if err != nil || b != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", b, err)
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture()
		f.addPolicy(2025, 22, 5)

		b, err := newBalanceService(f).GetOrCreate(42, 2025)
		if err != nil || b != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", b, err)
		}
	})

	t.Run("inactive employee", func(t *testing.T) {
		f := newFixture()
		f.addEmployee(1, models.RoleEmployee, nil)
		f.employees.employees[1].IsActive = false
		f.addPolicy(2025, 22, 5)

		b, err := newBalanceService(f).GetOrCreate(1, 2025)
		if err != nil || b != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", b, err)
		}
		if len(f.balances.balances) != 0 {
			t.Error("balance must not be created")
		}
	})
}

func TestRecalculate(t *testing.T) {
	f := newFixture()
	f.addEmployee(1, models.RoleEmployee, nil)
	f.addBalance(1, 2025, 28, 0)

	for _, r := range []models.VacationRequest{
		{EmployeeID: 1, StartDate: date(2025, 2, 3), EndDate: date(2025, 2, 7), RequestedDays: dec(5), Status: models.StatusApproved},
		{EmployeeID: 1, StartDate: date(2025, 12, 29), EndDate: date(2026, 1, 9), RequestedDays: dec(3), Status: models.StatusApproved},
		{EmployeeID: 1, StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 6), RequestedDays: dec(5), Status: models.StatusSubmitted},
		{EmployeeID: 1, StartDate: date(2025, 7, 7), EndDate: date(2025, 7, 8), RequestedDays: dec(2), Status: models.StatusRejected},
		{EmployeeID: 1, StartDate: date(2024, 12, 30), EndDate: date(2025, 1, 3), RequestedDays: dec(1), Status: models.StatusApproved},
		{EmployeeID: 2, StartDate: date(2025, 3, 3), EndDate: date(2025, 3, 4), RequestedDays: dec(2), Status: models.StatusApproved},
	} {
		r := r
		_ = f.requests.Create(&r)
	}

	svc := newBalanceService(f)
	first, err := svc.Recalculate(1, 2025)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if !first.UsedDays.Equal(dec(8)) || !first.RemainingDays.Equal(dec(20)) {
		t.Errorf("used = %s remaining = %s, want 8 / 20", first.UsedDays, first.RemainingDays)
	}

	second, err := svc.Recalculate(1, 2025)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}
	if !second.UsedDays.Equal(first.UsedDays) || !second.RemainingDays.Equal(first.RemainingDays) {
		t.Error("recalculate is not idempotent")
	}

	if len(f.audit.entries) != 2 || f.audit.entries[0].Action != models.AuditRecalculate {
		t.Errorf("audit entries = %+v", f.audit.entries)
	}
}

func TestRecalculateWithoutBalance(t *testing.T) {
	f := newFixture()
	b, err := newBalanceService(f).Recalculate(1, 2025)
	if err != nil || b != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", b, err)
	}
}

func TestHasSufficientBalance(t *testing.T) {
	f := newFixture()
	f.addEmployee(1, models.RoleEmployee, nil)
	f.addBalance(1, 2025, 10, 7)
	svc := newBalanceService(f)

	ok, err := svc.HasSufficientBalance(1, 2025, dec(3))
	if err != nil || !ok {
		t.Errorf("3 days: got (%v, %v), want true", ok, err)
	}
	ok, _ = svc.HasSufficientBalance(1, 2025, dec(4))
	if ok {
		t.Error("4 days: want false")
	}
	// нет политики на 2026 - не хватает
	ok, err = svc.HasSufficientBalance(1, 2026, dec(1))
	if err != nil || ok {
		t.Errorf("no policy: got (%v, %v), want false", ok, err)
	}
}
