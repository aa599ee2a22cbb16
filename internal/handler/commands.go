package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message)

	// Заявки (все сотрудники)
	case "request", "vacation":
		h.createRequest(message, args)
	case "check":
		h.checkDates(message, args)
	case "submit":
		h.submitRequest(message, args)
	case "cancel":
		h.cancelRequest(message, args)
	case "myrequests":
		h.showMyRequests(message)
	case "balance":
		h.showBalance(message, args)
	case "absent":
		h.showAbsent(message, args)
	case "requesthistory":
		h.showRequestHistory(message, args)

	// Согласование (руководители, HR)
	case "pending":
		h.showPending(message)
	case "approve":
		h.approveRequest(message, args)
	case "reject":
		h.rejectRequest(message, args)

	// Администрирование
	case "bulkassign":
		h.bulkAssign(message, args)
	case "recalc":
		h.recalculate(message, args)
	case "loadcalendar":
		h.loadCalendar(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📋 Доступные команды:

🏖️ Заявки на отпуск:
/request дата_начала дата_окончания [тип] - Создать черновик заявки
    Пример: /request 01.07.2026 14.07.2026
    Типы: vacation (по умолчанию), personal, day_off
/check дата_начала дата_окончания - Проверить период без создания заявки
/submit номер - Отправить черновик руководителю
/cancel номер - Отменить черновик или отправленную заявку
/myrequests - Мои заявки
/requesthistory номер - История изменений заявки

📊 Баланс:
/balance [год] - Остаток отпуска за год (по умолчанию текущий)

📅 Календарь отсутствий:
/absent [дата] - Кто отсутствует в этот день (по умолчанию сегодня)

✅ Для руководителей:
/pending - Заявки, ожидающие решения
/approve номер [комментарий] - Утвердить заявку
/reject номер причина - Отклонить заявку

💡 Даты: ДД.ММ.ГГГГ или ДД.ММ (текущий год)`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message) {
	text := `🛠 Команды администратора:

/bulkassign политика год - Назначить балансы года всем активным сотрудникам
    Пример: /bulkassign 1 2026
/recalc сотрудник год - Пересчитать использованные дни по утвержденным заявкам
/loadcalendar [файл] - Загрузить производственный календарь (JSON)`

	h.reply(message.Chat.ID, text)
}
