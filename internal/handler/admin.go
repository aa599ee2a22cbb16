package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vacation-tracker/internal/service"
)

// requireAdmin проверяет права администратора
func (h *Handler) requireAdmin(chatID int64) bool {
	employee, err := h.service.EmployeeByChatID(chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		return false
	}
	if !h.isAdmin(chatID, employee) {
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}

// parseTwoNumbers разбирает "число год"
func parseTwoNumbers(args string) (uint, int, error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("ожидалось два числа")
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id == 0 {
		return 0, 0, fmt.Errorf("неверный номер: %s", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, fmt.Errorf("неверный год: %s", parts[1])
	}
	return uint(id), year, nil
}

func (h *Handler) bulkAssign(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}

	policyID, year, err := parseTwoNumbers(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /bulkassign политика год")
		return
	}

	result, err := h.service.BulkAssign(policyID, year, fmt.Sprintf("chat:%d", chatID))
	if errors.Is(err, service.ErrPolicyNotFound) {
		h.reply(chatID, fmt.Sprintf("❌ Политика №%d не найдена.", policyID))
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Bulk assign failed")
		h.reply(chatID, "❌ Ошибка назначения балансов: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf(`✅ Балансы за %d год назначены

Всего активных сотрудников: %d
Создано: %d
Пропущено (баланс уже есть): %d`, year, result.Total, result.Created, result.Skipped))
}

func (h *Handler) recalculate(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}

	employeeID, year, err := parseTwoNumbers(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /recalc сотрудник год")
		return
	}

	balance, err := h.service.RecalculateBalance(employeeID, year)
	if err != nil {
		h.reply(chatID, "❌ Ошибка пересчета: "+err.Error())
		return
	}
	if balance == nil {
		h.reply(chatID, fmt.Sprintf("ℹ️ У сотрудника #%d нет баланса за %d год.", employeeID, year))
		return
	}

	h.reply(chatID, "🔄 Баланс пересчитан\n\n"+formatBalance(balance))
}

func (h *Handler) loadCalendar(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	if !h.requireAdmin(chatID) {
		return
	}

	filePath := strings.TrimSpace(args)
	if filePath == "" && h.config != nil {
		filePath = h.config.CalendarFile
	}
	if filePath == "" {
		h.reply(chatID, "❌ Укажите файл календаря или задайте CALENDAR_FILE.")
		return
	}

	count, err := h.service.LoadCalendar(filePath)
	if err != nil {
		h.logger.WithError(err).WithField("file", filePath).Error("Failed to load calendar")
		h.reply(chatID, "❌ Ошибка загрузки календаря: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("📅 Календарь загружен: %d дней.", count))
}
