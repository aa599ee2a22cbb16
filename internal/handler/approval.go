package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vacation-tracker/internal/models"
)

// approver - текущий сотрудник, если он вправе принимать решения
func (h *Handler) approver(chatID int64) *models.Employee {
	employee := h.currentEmployee(chatID)
	if employee == nil {
		return nil
	}
	if !employee.CanDecide() {
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для руководителей и HR.")
		return nil
	}
	return employee
}

func (h *Handler) showPending(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	manager := h.approver(chatID)
	if manager == nil {
		return
	}

	requests, err := h.service.ListPendingForManager(manager.ID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения заявок: "+err.Error())
		return
	}

	if len(requests) == 0 {
		h.reply(chatID, "✅ Нет заявок, ожидающих решения.")
		return
	}

	for i := range requests {
		request := &requests[i]
		text := fmt.Sprintf("👤 %s\n%s", request.Employee.FullName, formatRequest(request))

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Утвердить", callbackData(callbackApprove, request.ID)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", callbackData(callbackReject, request.ID)),
			),
		)
		h.client.Bot.Send(msg)
	}
}

// splitIDAndComment разбирает "номер [комментарий]"
func splitIDAndComment(args string) (string, string) {
	args = strings.TrimSpace(args)
	idStr, comment, _ := strings.Cut(args, " ")
	return idStr, strings.TrimSpace(comment)
}

func (h *Handler) approveRequest(message *tgbotapi.Message, args string) {
	idStr, comment := splitIDAndComment(args)
	requestID, ok := h.parseID(message.Chat.ID, idStr, "/approve номер [комментарий]")
	if !ok {
		return
	}
	h.approve(message.Chat.ID, requestID, comment)
}

func (h *Handler) approve(chatID int64, requestID uint, comment string) {
	manager := h.approver(chatID)
	if manager == nil {
		return
	}

	result, err := h.service.ApproveRequest(requestID, manager.ID, manager.IsManagerOnly(), comment)
	if h.operationFailed(chatID, requestID, err) {
		return
	}

	h.reply(chatID, formatOperation("✅ Заявка утверждена!", result))
	if result.Succeeded() {
		h.notifyEmployee(result.Request, "✅ Ваша заявка утверждена!")
	}
}

func (h *Handler) rejectRequest(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	manager := h.approver(chatID)
	if manager == nil {
		return
	}

	idStr, comment := splitIDAndComment(args)
	requestID, ok := h.parseID(chatID, idStr, "/reject номер причина")
	if !ok {
		return
	}

	result, err := h.service.RejectRequest(requestID, manager.ID, manager.IsManagerOnly(), comment)
	if h.operationFailed(chatID, requestID, err) {
		return
	}

	h.reply(chatID, formatOperation("❌ Заявка отклонена.", result))
	if result.Succeeded() {
		h.notifyEmployee(result.Request, "❌ Ваша заявка отклонена.")
	}
}

// notifyManager сообщает руководителю о новой заявке на согласование
func (h *Handler) notifyManager(employee *models.Employee, request *models.VacationRequest) {
	if employee.ManagerID == nil {
		return
	}
	manager, err := h.service.Employee(*employee.ManagerID)
	if err != nil || manager == nil || manager.TelegramChatID == nil {
		return
	}

	msg := tgbotapi.NewMessage(*manager.TelegramChatID,
		fmt.Sprintf("📨 Новая заявка от %s\n%s", employee.FullName, formatRequest(request)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Утвердить", callbackData(callbackApprove, request.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", callbackData(callbackReject, request.ID)),
		),
	)
	h.client.Bot.Send(msg)
}

func (h *Handler) notifyEmployee(request *models.VacationRequest, title string) {
	employee, err := h.service.Employee(request.EmployeeID)
	if err != nil || employee == nil || employee.TelegramChatID == nil {
		return
	}
	h.reply(*employee.TelegramChatID, title+"\n"+formatRequest(request))
}
