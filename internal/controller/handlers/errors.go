package handlers

import (
	"errors"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	if errors.Is(err, errUsage) {
		return "❌ Неверный формат команды. Смотрите /help"
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return "❌ Некорректные данные: " + apperror.MessageOf(err)
	case apperror.KindNotFound:
		return "❌ Не найдено: " + apperror.MessageOf(err)
	case apperror.KindAuthorization:
		return "❌ Недостаточно прав для этого действия"
	case apperror.KindConflict, apperror.KindState, apperror.KindResourceExhausted:
		return "❌ " + apperror.MessageOf(err)
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
