package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleUpdateLesson обрабатывает команду /lesson <id занятия> <yes|no> [тема]
//
// yes отмечает пропуск занятия студентом.
func (h *Handlers) HandleUpdateLesson(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) < 2 {
		h.reportError(ctx, b, chatID, "update_lesson", errUsage)
		return
	}

	lessonID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "update_lesson", err)
		return
	}

	absence, err := parseAbsence(args[1])
	if err != nil {
		h.reportError(ctx, b, chatID, "update_lesson", err)
		return
	}

	lesson, err := h.lessonService.Update(ctx, user.ID, lessonID, strings.Join(args[2:], " "), absence)
	if err != nil {
		h.reportError(ctx, b, chatID, "update_lesson", err)
		return
	}

	text := fmt.Sprintf("✏️ Занятие #%d (%s) обновлено", lesson.ID, FormatDateTime(lesson.Date))
	if lesson.Title != "" {
		text += fmt.Sprintf("\nТема: %s", lesson.Title)
	}
	if lesson.Absence {
		text += "\n🚫 Отмечен пропуск"
	}
	h.sendMessage(ctx, b, chatID, text)
}
