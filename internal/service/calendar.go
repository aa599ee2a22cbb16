package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/pkg/logger"
	"vacation-tracker/pkg/weekends"
)

// CalendarService считает рабочие дни по производственному календарю
type CalendarService struct {
	repo   *repository.Repository
	region string
	logger *logrus.Logger
}

func NewCalendarService(repo *repository.Repository, region string, log *logrus.Logger) *CalendarService {
	return &CalendarService{
		repo:   repo,
		region: region,
		logger: logger.OrDefault(log),
	}
}

// lookup загружает записи календаря за период одним запросом.
// Запись региона важнее общей записи на ту же дату.
func (s *CalendarService) lookup(start, end time.Time) (map[time.Time]models.CalendarDay, error) {
	days, err := s.repo.Calendar.GetRange(start, end, s.region)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения календаря: %w", err)
	}

	byDate := make(map[time.Time]models.CalendarDay, len(days))
	for _, day := range days {
		date := models.DateOnly(day.Date)
		if existing, ok := byDate[date]; ok && existing.Region != "" && day.Region == "" {
			continue
		}
		byDate[date] = day
	}
	return byDate, nil
}

// isNonWorkingDay: запись календаря решает, иначе суббота и воскресенье - выходные
func isNonWorkingDay(date time.Time, calendar map[time.Time]models.CalendarDay) bool {
	if day, ok := calendar[models.DateOnly(date)]; ok {
		return !day.IsWorking()
	}
	return models.IsWeekendDate(date)
}

// CountWorkingDays - число рабочих дней в [start, end] включительно
func (s *CalendarService) CountWorkingDays(start, end time.Time) (decimal.Decimal, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)
	if end.Before(start) {
		return decimal.Zero, nil
	}

	calendar, err := s.lookup(start, end)
	if err != nil {
		return decimal.Zero, err
	}

	count := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if !isNonWorkingDay(date, calendar) {
			count++
		}
	}
	return decimal.NewFromInt(int64(count)), nil
}

// ExpandRequestDays раскладывает период заявки по дням
func (s *CalendarService) ExpandRequestDays(requestID uint, start, end time.Time) ([]models.VacationRequestDay, error) {
	start, end = models.DateOnly(start), models.DateOnly(end)
	if end.Before(start) {
		return nil, nil
	}

	calendar, err := s.lookup(start, end)
	if err != nil {
		return nil, err
	}

	var days []models.VacationRequestDay
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		days = append(days, models.VacationRequestDay{
			RequestID:          requestID,
			Date:               date,
			DayFraction:        decimal.NewFromInt(1),
			IsHolidayOrWeekend: isNonWorkingDay(date, calendar),
		})
	}
	return days, nil
}

// LoadFromJSON загружает производственный календарь из JSON файла
func (s *CalendarService) LoadFromJSON(filePath string) (int, error) {
	cal, err := weekends.ParseWeekendsJSON(filePath)
	if err != nil {
		return 0, err
	}
	return s.LoadCalendar(cal)
}

// LoadCalendar заменяет записи года календаря для региона сервиса
func (s *CalendarService) LoadCalendar(cal *weekends.Calendar) (int, error) {
	days := make([]models.CalendarDay, 0, len(cal.Days))
	for _, d := range cal.Days {
		day := models.CalendarDay{
			Date:      models.DateOnly(d.Date),
			Region:    s.region,
			Year:      cal.Year,
			IsWeekend: d.IsWeekend,
			IsHoliday: d.IsHoliday,
		}
		if d.Shortened {
			day.HolidayName = "сокращенный день"
		}
		days = append(days, day)
	}

	if err := s.repo.Calendar.ReplaceYear(cal.Year, s.region, days); err != nil {
		s.logger.WithError(err).WithField("year", cal.Year).Error("Failed to load calendar")
		return 0, fmt.Errorf("ошибка сохранения календаря: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"year":   cal.Year,
		"region": s.region,
		"days":   len(days),
	}).Info("Calendar loaded")

	return len(days), nil
}
