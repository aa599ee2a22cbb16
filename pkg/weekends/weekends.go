package weekends

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WeekendJSON - формат производственного календаря (xmlcalendar)
type WeekendJSON struct {
	Year        int             `json:"year"`
	Months      []MonthWeekends `json:"months"`
	Transitions []Transition    `json:"transitions"`
	Statistic   Statistic       `json:"statistic"`
}

// MonthWeekends - нерабочие дни месяца строкой вида "1,2,3+,7,8*"
// "+" - перенесенный выходной, "*" - сокращенный рабочий день
type MonthWeekends struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Statistic struct {
	Workdays int     `json:"workdays"`
	Holidays int     `json:"holidays"`
	Hours40  float64 `json:"hours40"`
	Hours36  float64 `json:"hours36"`
	Hours24  float64 `json:"hours24"`
}

// Day - день календаря с явной разметкой
type Day struct {
	Date      time.Time
	IsWeekend bool
	IsHoliday bool
	Shortened bool
}

// IsWorking - рабочий день (в т.ч. сокращенный или рабочая суббота)
func (d Day) IsWorking() bool {
	return !d.IsWeekend && !d.IsHoliday
}

type Calendar struct {
	Year      int
	Days      []Day
	Statistic Statistic
}

// ParseWeekendsJSON читает файл календаря
func ParseWeekendsJSON(filePath string) (*Calendar, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает календарь. Результат полный по году:
// каждая суббота и воскресенье, которых нет в списке, попадает в него как рабочий день.
func Parse(data []byte) (*Calendar, error) {
	var weekendJSON WeekendJSON
	if err := json.Unmarshal(data, &weekendJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if weekendJSON.Year == 0 {
		return nil, fmt.Errorf("calendar year is missing")
	}

	year := weekendJSON.Year
	listed := make(map[time.Time]Day)

	for _, monthData := range weekendJSON.Months {
		if monthData.Month < 1 || monthData.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", monthData.Month)
		}

		for _, dayStr := range strings.Split(monthData.Days, ",") {
			dayStr = strings.TrimSpace(dayStr)
			if dayStr == "" {
				continue
			}

			shortened := strings.HasSuffix(dayStr, "*")
			transferred := strings.HasSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(strings.TrimSuffix(dayStr, "+"), "*")

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w",
					dayStr, monthData.Month, err)
			}

			date := time.Date(year, time.Month(monthData.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Month() != time.Month(monthData.Month) {
				return nil, fmt.Errorf("day %d does not exist in month %d", day, monthData.Month)
			}

			entry := Day{Date: date, Shortened: shortened}
			if !shortened {
				if isWeekend(date) && !transferred {
					entry.IsWeekend = true
				} else {
					entry.IsHoliday = true
				}
			}
			listed[date] = entry
		}
	}

	// субботы и воскресенья вне списка - рабочие по переносу
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for date := start; date.Year() == year; date = date.AddDate(0, 0, 1) {
		if _, ok := listed[date]; ok || !isWeekend(date) {
			continue
		}
		listed[date] = Day{Date: date}
	}

	days := make([]Day, 0, len(listed))
	for _, d := range listed {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	return &Calendar{
		Year:      year,
		Days:      days,
		Statistic: weekendJSON.Statistic,
	}, nil
}

// NonWorking возвращает только нерабочие дни
func (c *Calendar) NonWorking() []Day {
	result := []Day{}
	for _, d := range c.Days {
		if !d.IsWorking() {
			result = append(result, d)
		}
	}
	return result
}

// Summary - краткая сводка для вывода в консоль
func (c *Calendar) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Год: %d\n", c.Year)
	fmt.Fprintf(&b, "Всего нерабочих дней: %d\n", len(c.NonWorking()))
	fmt.Fprintf(&b, "Рабочих дней: %d\n", c.Statistic.Workdays)
	fmt.Fprintf(&b, "Часов при 40-часовой неделе: %.1f\n", c.Statistic.Hours40)
	return b.String()
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
