package models

import (
	"time"
)

// CalendarDay - запись производственного календаря. Не у каждой даты есть запись.
type CalendarDay struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_calendar_date_region" json:"date"`
	Region      string    `gorm:"type:varchar(20);not null;default:'';uniqueIndex:idx_calendar_date_region" json:"region"`
	Year        int       `gorm:"index" json:"year"`
	IsWeekend   bool      `gorm:"not null;default:false" json:"is_weekend"`
	IsHoliday   bool      `gorm:"not null;default:false" json:"is_holiday"`
	HolidayName string    `json:"holiday_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CalendarDay) TableName() string {
	return "calendar_days"
}

// IsWorking - день с записью рабочий, если он не выходной и не праздник
func (d *CalendarDay) IsWorking() bool {
	return !d.IsWeekend && !d.IsHoliday
}
