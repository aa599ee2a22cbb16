package models

import "time"

const DateLayout = "2006-01-02"

// DateOnly обрезает время и приводит дату к полуночи UTC.
// Все даты календаря, заявок и отсутствий хранятся в этом виде.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YearBounds возвращает [1 января year, 1 января year+1)
func YearBounds(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func IsWeekendDate(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
