package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vacation-tracker/internal/models"
	"vacation-tracker/internal/service"
)

// createRequest создает черновик заявки
func (h *Handler) createRequest(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, `🏖️ Создание заявки

Формат команды:
/request дата_начала дата_окончания [тип]

Примеры:
/request 01.07.2026 14.07.2026
→ Отпуск с 1 по 14 июля 2026

/request 15.08.2026 15.08.2026 day_off
→ Отгул 15 августа 2026

После создания заявка остается черновиком. Отправьте ее руководителю командой /submit.`)
		return
	}

	start, end, requestType, err := parsePeriod(args, time.Now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /request дата_начала дата_окончания [тип]")
		return
	}

	result, err := h.service.CreateRequest(employee.ID, start, end, requestType)
	if err != nil {
		h.logger.WithError(err).WithField("employee_id", employee.ID).Error("Failed to create request")
		h.reply(chatID, "❌ Ошибка создания заявки: "+err.Error())
		return
	}

	text := formatOperation("✅ Черновик заявки создан!", result)
	if !result.Succeeded() {
		h.reply(chatID, text)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Отправить", callbackData(callbackSubmit, result.Request.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Отменить", callbackData(callbackCancel, result.Request.ID)),
		),
	)
	h.client.Bot.Send(msg)
}

// checkDates проверяет период без создания заявки
func (h *Handler) checkDates(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	start, end, _, err := parsePeriod(args, time.Now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /check дата_начала дата_окончания")
		return
	}

	result, err := h.service.ValidateDates(employee.ID, start, end)
	if err != nil {
		h.logger.WithError(err).Error("Failed to validate dates")
		h.reply(chatID, "❌ Ошибка проверки периода: "+err.Error())
		return
	}

	h.reply(chatID, formatValidation(result))
}

func (h *Handler) submitRequest(message *tgbotapi.Message, args string) {
	requestID, ok := h.parseID(message.Chat.ID, args, "/submit номер")
	if !ok {
		return
	}
	h.submit(message.Chat.ID, requestID)
}

func (h *Handler) submit(chatID int64, requestID uint) {
	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	result, err := h.service.SubmitRequest(requestID, employee.ID)
	if h.operationFailed(chatID, requestID, err) {
		return
	}

	h.reply(chatID, formatOperation("📨 Заявка отправлена на согласование!", result))
	if result.Succeeded() {
		h.notifyManager(employee, result.Request)
	}
}

func (h *Handler) cancelRequest(message *tgbotapi.Message, args string) {
	requestID, ok := h.parseID(message.Chat.ID, args, "/cancel номер")
	if !ok {
		return
	}
	h.cancel(message.Chat.ID, requestID)
}

func (h *Handler) cancel(chatID int64, requestID uint) {
	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	result, err := h.service.CancelRequest(requestID, employee.ID)
	if h.operationFailed(chatID, requestID, err) {
		return
	}

	h.reply(chatID, formatOperation("🚫 Заявка отменена.", result))
}

// operationFailed отвечает на ошибку операции и возвращает true, если она была
func (h *Handler) operationFailed(chatID int64, requestID uint, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, service.ErrRequestNotFound) {
		h.reply(chatID, fmt.Sprintf("❌ Заявка №%d не найдена.", requestID))
		return true
	}
	h.logger.WithError(err).WithField("request_id", requestID).Error("Request operation failed")
	h.reply(chatID, "❌ Ошибка: "+err.Error())
	return true
}

func (h *Handler) showMyRequests(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	requests, err := h.service.ListMyRequests(employee.ID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения заявок: "+err.Error())
		return
	}

	if len(requests) == 0 {
		h.reply(chatID, "📋 У вас пока нет заявок.\nСоздайте заявку командой /request.")
		return
	}

	var b strings.Builder
	b.WriteString("📋 Мои заявки:\n\n")
	for i := range requests {
		b.WriteString(formatRequest(&requests[i]) + "\n")
	}
	h.reply(chatID, strings.TrimRight(b.String(), "\n"))
}

func (h *Handler) showBalance(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}

	year := time.Now().Year()
	if arg := strings.TrimSpace(args); arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil || parsed < 2000 || parsed > 2100 {
			h.reply(chatID, "❌ Неверный год. Формат: /balance [год]")
			return
		}
		year = parsed
	}

	balance, err := h.service.GetBalance(employee.ID, year)
	if err != nil {
		h.logger.WithError(err).WithField("employee_id", employee.ID).Error("Failed to get balance")
		h.reply(chatID, "❌ Ошибка получения баланса: "+err.Error())
		return
	}
	if balance == nil {
		h.reply(chatID, fmt.Sprintf("ℹ️ Политика отпусков на %d год не настроена. Обратитесь в HR.", year))
		return
	}

	h.reply(chatID, formatBalance(balance))
}

func (h *Handler) showAbsent(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if h.currentEmployee(chatID) == nil {
		return
	}

	date := models.DateOnly(time.Now())
	if arg := strings.TrimSpace(args); arg != "" {
		parsed, err := parseDate(arg)
		if err != nil {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		date = parsed
	}

	entries, err := h.service.AbsentOn(date)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения отсутствий: "+err.Error())
		return
	}

	if len(entries) == 0 {
		h.reply(chatID, fmt.Sprintf("📅 %s все на месте.", date.Format(dateFormat)))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Отсутствуют %s:\n\n", date.Format(dateFormat))
	for _, e := range entries {
		name := e.Employee.FullName
		if name == "" {
			name = fmt.Sprintf("сотрудник #%d", e.EmployeeID)
		}
		fmt.Fprintf(&b, "• %s - %s\n", name, typeLabel(e.AbsenceType))
	}
	h.reply(chatID, strings.TrimRight(b.String(), "\n"))
}

func (h *Handler) showRequestHistory(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee := h.currentEmployee(chatID)
	if employee == nil {
		return
	}
	requestID, ok := h.parseID(chatID, args, "/requesthistory номер")
	if !ok {
		return
	}

	request, err := h.service.GetRequest(requestID)
	if h.operationFailed(chatID, requestID, err) {
		return
	}
	if !request.IsOwnedBy(employee.ID) && !employee.CanDecide() {
		h.reply(chatID, "❌ Доступ запрещен.")
		return
	}

	history, err := h.service.RequestHistory(requestID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения истории: "+err.Error())
		return
	}

	var b strings.Builder
	b.WriteString(formatRequest(request) + "\n\n🕓 История:\n")
	for _, entry := range history {
		from := string(entry.OldStatus)
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(&b, "• %s %s → %s (сотрудник #%s)\n",
			entry.CreatedAt.Format("02.01.2006 15:04"), from, entry.NewStatus, entry.PerformedBy)
	}
	h.reply(chatID, strings.TrimRight(b.String(), "\n"))
}
