// internal/models/absence_entry.go
package models

import "time"

// AbsenceEntry - производная запись "сотрудник отсутствует в этот день".
// Создается только синхронизацией из утвержденных заявок.
type AbsenceEntry struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	EmployeeID      uint        `gorm:"not null;index;uniqueIndex:idx_absence_employee_date_source" json:"employee_id"`
	Date            time.Time   `gorm:"not null;index;uniqueIndex:idx_absence_employee_date_source" json:"date"`
	AbsenceType     RequestType `gorm:"type:varchar(20);not null" json:"absence_type"`
	SourceRequestID uint        `gorm:"not null;index;uniqueIndex:idx_absence_employee_date_source" json:"source_request_id"`
	CreatedAt       time.Time   `json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (AbsenceEntry) TableName() string {
	return "absence_entries"
}
