package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccrualType string

const (
	AccrualAnnual  AccrualType = "annual"
	AccrualMonthly AccrualType = "monthly" // зарезервировано, расчет не реализован
)

// VacationPolicy - годовая норма отпуска и лимит переноса остатка
type VacationPolicy struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	Year             int             `gorm:"not null;index" json:"year"`
	TotalDaysPerYear decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"total_days_per_year"`
	CarryOverMaxDays decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"carry_over_max_days"`
	AccrualType      AccrualType     `gorm:"type:varchar(20);not null;default:'annual'" json:"accrual_type"`
	IsDefault        bool            `gorm:"not null;default:false" json:"is_default"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VacationPolicy) TableName() string {
	return "vacation_policies"
}

// IsValid проверяет валидность данных
func (p *VacationPolicy) IsValid() bool {
	if p.Year < 2000 || p.Year > 2100 {
		return false
	}
	if p.TotalDaysPerYear.IsNegative() || p.CarryOverMaxDays.IsNegative() {
		return false
	}
	return p.AccrualType == AccrualAnnual || p.AccrualType == AccrualMonthly
}

// CarryOverFrom считает перенос остатка прошлого года:
// min(max(previous.RemainingDays, 0), CarryOverMaxDays). Без прошлого баланса - 0.
func (p *VacationPolicy) CarryOverFrom(previous *VacationBalance) decimal.Decimal {
	if previous == nil {
		return decimal.Zero
	}
	remaining := decimal.Max(previous.RemainingDays, decimal.Zero)
	return decimal.Min(remaining, p.CarryOverMaxDays)
}
