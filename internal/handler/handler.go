package handler

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/config"
	"vacation-tracker/internal/models"
	"vacation-tracker/internal/service"
	"vacation-tracker/pkg/logger"
	"vacation-tracker/pkg/telegram"
)

type Handler struct {
	client  *telegram.Client
	service *service.Service
	config  *config.Config
	logger  *logrus.Logger
}

func NewHandler(client *telegram.Client, svc *service.Service, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{
		client:  client,
		service: svc,
		config:  cfg,
		logger:  logger.OrDefault(log),
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки под заявками
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Send(editMsg)

	action, requestID, ok := parseCallbackData(data)
	if !ok {
		h.logger.WithField("data", data).Warn("Unknown callback data")
	} else {
		switch action {
		case callbackApprove:
			h.approve(chatID, requestID, "")
		case callbackSubmit:
			h.submit(chatID, requestID)
		case callbackCancel:
			h.cancel(chatID, requestID)
		case callbackReject:
			h.reply(chatID, "✍️ Укажите причину отклонения командой:\n/reject "+strconv.FormatUint(uint64(requestID), 10)+" причина")
		}
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	h.client.Bot.Send(callbackConfig)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From != nil {
		h.logger.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "Я понимаю только команды. Используйте /help для списка команд.")
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

// currentEmployee находит активного сотрудника по чату или отвечает отказом
func (h *Handler) currentEmployee(chatID int64) *models.Employee {
	employee, err := h.service.EmployeeByChatID(chatID)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to load employee")
		h.reply(chatID, "❌ Ошибка получения профиля: "+err.Error())
		return nil
	}
	if employee == nil || !employee.IsActive {
		h.logger.WithField("chat_id", chatID).Warn("Employee not found for chat")
		h.reply(chatID, "❌ Вы не найдены в справочнике сотрудников.\nОбратитесь в HR, чтобы привязать Telegram к профилю.")
		return nil
	}
	return employee
}

// isAdmin - базовый администратор из конфига или сотрудник с ролью hr/admin
func (h *Handler) isAdmin(chatID int64, employee *models.Employee) bool {
	if h.config != nil && h.config.BaseAdminChatID != 0 && h.config.BaseAdminChatID == chatID {
		return true
	}
	return employee != nil && employee.IsAdmin()
}

func (h *Handler) parseID(chatID int64, arg, usage string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil || id == 0 {
		h.reply(chatID, "❌ Укажите номер заявки. Формат: "+usage)
		return 0, false
	}
	return uint(id), true
}
