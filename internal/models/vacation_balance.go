package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VacationBalance - баланс сотрудника за год. Одна запись на пару (employee, year).
type VacationBalance struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	EmployeeID    uint            `gorm:"not null;uniqueIndex:idx_balance_employee_year" json:"employee_id"`
	Year          int             `gorm:"not null;uniqueIndex:idx_balance_employee_year;index:idx_balance_policy_year" json:"year"`
	PolicyID      uint            `gorm:"not null;index:idx_balance_policy_year" json:"policy_id"`
	AllocatedDays decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"allocated_days"`
	UsedDays      decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"used_days"`
	RemainingDays decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"remaining_days"`
	CarryOverDays decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"carry_over_days"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee       `gorm:"foreignKey:EmployeeID" json:"-"`
	Policy   VacationPolicy `gorm:"foreignKey:PolicyID" json:"-"`
}

func (VacationBalance) TableName() string {
	return "vacation_balances"
}

// NewVacationBalance создает свежий баланс: allocated = total + carryOver, used = 0
func NewVacationBalance(employeeID uint, policy *VacationPolicy, year int, carryOver decimal.Decimal) VacationBalance {
	allocated := policy.TotalDaysPerYear.Add(carryOver)
	return VacationBalance{
		EmployeeID:    employeeID,
		PolicyID:      policy.ID,
		Year:          year,
		AllocatedDays: allocated,
		UsedDays:      decimal.Zero,
		RemainingDays: allocated,
		CarryOverDays: carryOver,
	}
}

// ApplyUsage выставляет использованные дни и пересчитывает остаток
func (b *VacationBalance) ApplyUsage(used decimal.Decimal) {
	b.UsedDays = used
	b.RemainingDays = b.AllocatedDays.Sub(used)
}

// IsConsistent проверяет инвариант remaining == allocated - used
func (b *VacationBalance) IsConsistent() bool {
	return b.RemainingDays.Equal(b.AllocatedDays.Sub(b.UsedDays))
}
