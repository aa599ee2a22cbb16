package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/service"
)

const dateFormat = "02.01.2006"

const (
	callbackApprove = "approve"
	callbackReject  = "reject"
	callbackSubmit  = "submit"
	callbackCancel  = "cancel"
)

func callbackData(action string, requestID uint) string {
	return fmt.Sprintf("%s_%d", action, requestID)
}

func parseCallbackData(data string) (string, uint, bool) {
	action, idStr, found := strings.Cut(data, "_")
	if !found {
		return "", 0, false
	}
	switch action {
	case callbackApprove, callbackReject, callbackSubmit, callbackCancel:
	default:
		return "", 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return "", 0, false
	}
	return action, uint(id), true
}

// parseDate парсит дату из строки
func parseDate(dateStr string) (time.Time, error) {
	return parseDateAt(dateStr, time.Now())
}

func parseDateAt(dateStr string, now time.Time) (time.Time, error) {
	// Пробуем разные форматы
	formats := []string{
		"02.01.2006",
		"02-01-2006",
		"2006-01-02",
		"02.01",
		"02-01",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			// Если указан только день и месяц, добавляем текущий год
			if !strings.Contains(format, "2006") {
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return models.DateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("неверный формат даты. Используйте ДД.ММ.ГГГГ или ДД.ММ")
}

// parsePeriod разбирает "дата_начала дата_окончания [тип]"
func parsePeriod(args string, now time.Time) (time.Time, time.Time, models.RequestType, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, time.Time{}, "", fmt.Errorf("укажите дату начала и дату окончания")
	}

	start, err := parseDateAt(parts[0], now)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("дата начала: %w", err)
	}
	end, err := parseDateAt(parts[1], now)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("дата окончания: %w", err)
	}

	requestType := models.RequestTypeVacation
	if len(parts) == 3 {
		requestType = models.RequestType(strings.ToLower(parts[2]))
	}
	return start, end, requestType, nil
}

func statusLabel(status models.RequestStatus) string {
	switch status {
	case models.StatusDraft:
		return "📝 черновик"
	case models.StatusSubmitted:
		return "⏳ на согласовании"
	case models.StatusApproved:
		return "✅ утверждена"
	case models.StatusRejected:
		return "❌ отклонена"
	case models.StatusCancelled:
		return "🚫 отменена"
	}
	return string(status)
}

func typeLabel(requestType models.RequestType) string {
	switch requestType {
	case models.RequestTypeVacation:
		return "🏖️ отпуск"
	case models.RequestTypePersonal:
		return "👤 личные дни"
	case models.RequestTypeDayOff:
		return "🎯 отгул"
	}
	return string(requestType)
}

func formatRequest(r *models.VacationRequest) string {
	text := fmt.Sprintf("№%d %s: %s - %s, %s раб. дн., %s",
		r.ID,
		typeLabel(r.Type),
		r.StartDate.Format(dateFormat),
		r.EndDate.Format(dateFormat),
		r.RequestedDays.String(),
		statusLabel(r.Status))
	if r.ApproverComment != "" {
		text += fmt.Sprintf("\n   💬 %s", r.ApproverComment)
	}
	return text
}

func formatMessages(b *strings.Builder, icon string, messages []string) {
	for _, m := range messages {
		fmt.Fprintf(b, "%s %s\n", icon, m)
	}
}

// formatOperation - ответ на операцию с заявкой: отказ или успех с предупреждениями
func formatOperation(success string, result *service.OperationResult) string {
	var b strings.Builder
	if !result.Succeeded() {
		b.WriteString("❌ Операция отклонена:\n")
		formatMessages(&b, "•", result.Errors)
	} else {
		b.WriteString(success + "\n")
		if result.Request != nil {
			b.WriteString(formatRequest(result.Request) + "\n")
		}
	}
	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		formatMessages(&b, "⚠️", result.Warnings)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatValidation(result *service.ValidationResult) string {
	var b strings.Builder
	if result.IsValid {
		b.WriteString("✅ Период можно запросить\n")
	} else {
		b.WriteString("❌ Период нельзя запросить:\n")
		formatMessages(&b, "•", result.Errors)
	}
	fmt.Fprintf(&b, "\n📅 Рабочих дней: %s\n", result.WorkingDays.String())
	fmt.Fprintf(&b, "📊 Доступно: %s\n", result.AvailableDays.String())
	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		formatMessages(&b, "⚠️", result.Warnings)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatBalance(b *models.VacationBalance) string {
	return fmt.Sprintf(`📊 Баланс отпуска за %d год

Начислено: %s (перенос с прошлого года: %s)
Использовано: %s
Осталось: %s`,
		b.Year,
		b.AllocatedDays.String(),
		b.CarryOverDays.String(),
		b.UsedDays.String(),
		b.RemainingDays.String())
}
