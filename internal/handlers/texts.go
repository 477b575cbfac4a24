package handlers

// Button captions and user-visible texts. Callback data for the reminder
// buttons is a wire format shared with the reminder prompts.
const (
	btnStats = "📆 Статистика"

	cbRemindTomorrow = "remind_tomorrow"
	cbRemindDone     = "remind_done"
	cbConfirmDelete  = "confirm_delete" // confirm_delete:<resource>:<date>:<value>
	cbCancelDelete   = "cancel_delete"
	cbUndoDelete     = "undo_delete"

	btnRemindTomorrow = "⏰ Напомнить завтра"
	btnRemindDone     = "✅ Уже ввёл"
	btnConfirmDelete  = "🗑 Удалить"
	btnCancelDelete   = "Отмена"
	btnUndoDelete     = "↩ Отменить удаление"

	textMenu           = "Выберите действие:"
	textReminder       = "📢 Пора ввести показания!"
	textFollowUp       = "📢 Напоминание: пора ввести показания!"
	textRemindTomorrow = "⏰ Напомню завтра!"
	textRemindDone     = "✅ Отлично! До следующего месяца."

	textNotANumber   = "❌ Ошибка: введите корректное число!"
	textStorageError = "❌ Не получилось сохранить, попробуйте ещё раз."
	textDeleteUsage  = "Формат команды: delete ДД.ММ.ГГГГ <ресурс>\nНапример: delete 05.03.2025 вода"

	textUndoEmpty    = "Нечего отменять."
	textUndoExpired  = "⏳ Прошло больше 5 минут, отмена уже недоступна."
	textUndoConflict = "❌ На эту дату уже есть новое показание, восстанавливать нечего."

	textDeleteCancelled = "Удаление отменено."
	textNothingToDelete = "На эту дату показаний нет."
)
