package weekends

import (
	"testing"
	"time"
)

const calendar2024 = `{
	"year": 2024,
	"months": [
		{"month": 1, "days": "1,2,3,4,5,6,7,8,13,14,20,21,27,28"},
		{"month": 2, "days": "3,4,10,11,17,18,22*,23,24,25"},
		{"month": 4, "days": "6,7,13,14,20,21,28,29+,30+"}
	],
	"statistic": {"workdays": 248, "holidays": 118, "hours40": 1979}
}`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func findDay(t *testing.T, c *Calendar, d time.Time) Day {
	t.Helper()
	for _, day := range c.Days {
		if day.Date.Equal(d) {
			return day
		}
	}
	t.Fatalf("day %s not found", d.Format("2006-01-02"))
	return Day{}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(calendar2024))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Year != 2024 {
		t.Fatalf("year = %d, want 2024", c.Year)
	}

	tests := []struct {
		name      string
		date      time.Time
		weekend   bool
		holiday   bool
		shortened bool
	}{
		{"new year holiday on monday", date(2024, 1, 1), false, true, false},
		{"regular saturday", date(2024, 1, 6), true, false, false},
		{"defender day", date(2024, 2, 23), false, true, false},
		{"shortened day", date(2024, 2, 22), false, false, true},
		{"transferred monday", date(2024, 4, 29), false, true, false},
		{"working saturday", date(2024, 4, 27), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := findDay(t, c, tt.date)
			if d.IsWeekend != tt.weekend || d.IsHoliday != tt.holiday || d.Shortened != tt.shortened {
				t.Errorf("got weekend=%v holiday=%v shortened=%v, want %v %v %v",
					d.IsWeekend, d.IsHoliday, d.Shortened, tt.weekend, tt.holiday, tt.shortened)
			}
		})
	}

	if c.Statistic.Workdays != 248 {
		t.Errorf("workdays = %d, want 248", c.Statistic.Workdays)
	}
}

func TestParseSortedAndComplete(t *testing.T) {
	c, err := Parse([]byte(`{"year": 2025, "months": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// без списка все выходные года становятся рабочими днями
	if len(c.Days) != 104 {
		t.Fatalf("days = %d, want 104", len(c.Days))
	}
	if len(c.NonWorking()) != 0 {
		t.Errorf("non-working = %d, want 0", len(c.NonWorking()))
	}
	for i := 1; i < len(c.Days); i++ {
		if !c.Days[i-1].Date.Before(c.Days[i].Date) {
			t.Fatalf("days not sorted at %d", i)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad json":     `{`,
		"no year":      `{"months": []}`,
		"bad month":    `{"year": 2024, "months": [{"month": 13, "days": "1"}]}`,
		"bad day":      `{"year": 2024, "months": [{"month": 1, "days": "x"}]}`,
		"day overflow": `{"year": 2024, "months": [{"month": 2, "days": "30"}]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
