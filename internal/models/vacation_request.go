package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

// Статусы заявок
const (
	StatusDraft     RequestStatus = "draft"     // Черновик
	StatusSubmitted RequestStatus = "submitted" // Отправлена руководителю
	StatusApproved  RequestStatus = "approved"  // Утверждена
	StatusRejected  RequestStatus = "rejected"  // Отклонена
	StatusCancelled RequestStatus = "cancelled" // Отменена сотрудником
)

var transitions = map[RequestStatus][]RequestStatus{
	StatusDraft:     {StatusSubmitted, StatusCancelled},
	StatusSubmitted: {StatusApproved, StatusRejected, StatusCancelled},
}

// CanTransitionTo проверяет допустимость перехода
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal - approved, rejected и cancelled дальше не переходят
func (s RequestStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// BlocksOverlap - заявки в этих статусах занимают даты
func (s RequestStatus) BlocksOverlap() bool {
	return s != StatusRejected && s != StatusCancelled
}

type RequestType string

const (
	RequestTypeVacation RequestType = "vacation"
	RequestTypePersonal RequestType = "personal"
	RequestTypeDayOff   RequestType = "day_off"
)

func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeVacation, RequestTypePersonal, RequestTypeDayOff:
		return true
	}
	return false
}

type VacationRequest struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	EmployeeID         uint            `gorm:"not null;index:idx_request_employee_dates" json:"employee_id"`
	StartDate          time.Time       `gorm:"not null;index:idx_request_employee_dates" json:"start_date"`
	EndDate            time.Time       `gorm:"not null;index:idx_request_employee_dates" json:"end_date"`
	RequestedDays      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"requested_days"`
	Type               RequestType     `gorm:"type:varchar(20);not null;default:'vacation'" json:"type"`
	Status             RequestStatus   `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ApproverEmployeeID *uint           `json:"approver_employee_id"`
	ApproverComment    string          `json:"approver_comment"`
	SubmittedAt        *time.Time      `json:"submitted_at"`
	DecisionAt         *time.Time      `json:"decision_at"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee             `gorm:"foreignKey:EmployeeID" json:"-"`
	Days     []VacationRequestDay `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"days"`
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// Overlaps - пересечение отрезков [start, end] включительно
func (r *VacationRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// IsOwnedBy проверяет владельца заявки
func (r *VacationRequest) IsOwnedBy(employeeID uint) bool {
	return r.EmployeeID == employeeID
}

// VacationRequestDay - разбивка заявки по календарным дням. Создается один раз вместе с заявкой.
type VacationRequestDay struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	RequestID          uint            `gorm:"not null;index" json:"request_id"`
	Date               time.Time       `gorm:"not null" json:"date"`
	DayFraction        decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"day_fraction"`
	IsHolidayOrWeekend bool            `gorm:"not null;default:false" json:"is_holiday_or_weekend"`
}

func (VacationRequestDay) TableName() string {
	return "vacation_request_days"
}
