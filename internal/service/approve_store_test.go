package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
)

// newStoreEngine - движок поверх SQLite с одним соединением:
// обращение к базе мимо транзакции внутри нее зависает
func newStoreEngine(t *testing.T) (*Service, *gorm.DB, *models.Employee, *models.Employee) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo, err := repository.NewRepository(db, logger.NewNop())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}

	manager := &models.Employee{FullName: "Анна", Role: models.RoleManager, IsActive: true}
	if err := repo.Employee.Create(manager); err != nil {
		t.Fatalf("create manager: %v", err)
	}
	employee := &models.Employee{FullName: "Борис", Role: models.RoleEmployee, IsActive: true, ManagerID: &manager.ID}
	if err := repo.Employee.Create(employee); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if err := repo.Policy.Create(&models.VacationPolicy{
		Name:             "Стандарт",
		Year:             2025,
		TotalDaysPerYear: decimal.NewFromInt(28),
		AccrualType:      models.AccrualAnnual,
		IsDefault:        true,
	}); err != nil {
		t.Fatalf("create policy: %v", err)
	}

	svc := NewService(repo, Options{
		Validator: ValidatorConfig{
			LongRequestDays: 15,
			PastGraceDays:   1,
			Now:             fixedClock(today.Add(9 * time.Hour)),
		},
		Logger: logger.NewNop(),
	})
	return svc, db, manager, employee
}

func submitOnStore(t *testing.T, svc *Service, employeeID uint) *models.VacationRequest {
	t.Helper()
	created := must(t)(svc.CreateRequest(employeeID, date(2025, 3, 3), date(2025, 3, 9), models.RequestTypeVacation))
	return must(t)(svc.SubmitRequest(created.ID, employeeID))
}

func TestApprove_CreatesMissingBalanceInsideTransaction(t *testing.T) {
	svc, db, manager, employee := newStoreEngine(t)
	request := submitOnStore(t, svc, employee.ID)

	if err := db.Where("employee_id = ?", employee.ID).Delete(&models.VacationBalance{}).Error; err != nil {
		t.Fatalf("drop balance: %v", err)
	}

	result, err := svc.ApproveRequest(request.ID, manager.ID, true, "")
	approved := must(t)(result, err)
	if approved.Status != models.StatusApproved {
		t.Fatalf("status = %s", approved.Status)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}

	var rows int64
	db.Model(&models.VacationBalance{}).Where("employee_id = ? AND year = ?", employee.ID, 2025).Count(&rows)
	if rows != 1 {
		t.Fatalf("balance rows = %d, want 1", rows)
	}

	balance, err := svc.GetBalance(employee.ID, 2025)
	if err != nil || balance == nil {
		t.Fatalf("GetBalance: %v %v", balance, err)
	}
	if !balance.UsedDays.Equal(decimal.NewFromInt(5)) || !balance.RemainingDays.Equal(decimal.NewFromInt(23)) {
		t.Errorf("balance used=%s remaining=%s, want 5/23", balance.UsedDays, balance.RemainingDays)
	}
}

func TestApprove_WarnsWhenBalanceShrankAfterSubmit(t *testing.T) {
	svc, db, manager, employee := newStoreEngine(t)
	request := submitOnStore(t, svc, employee.ID)

	err := db.Model(&models.VacationBalance{}).
		Where("employee_id = ? AND year = ?", employee.ID, 2025).
		Updates(map[string]any{"allocated_days": decimal.NewFromInt(2), "remaining_days": decimal.NewFromInt(2)}).Error
	if err != nil {
		t.Fatalf("shrink balance: %v", err)
	}

	result, err := svc.ApproveRequest(request.ID, manager.ID, true, "")
	must(t)(result, err)
	if !hasMessage(result.Warnings, "недостаточно") {
		t.Errorf("warnings = %v, want insufficient balance warning", result.Warnings)
	}

	balance, _ := svc.GetBalance(employee.ID, 2025)
	if balance == nil || !balance.RemainingDays.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("balance = %+v, want remaining -3", balance)
	}
}
