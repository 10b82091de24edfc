package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleBook обрабатывает команду /book <id слота>
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reportError(ctx, b, chatID, "create_booking", errUsage)
		return
	}
	availabilityID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_booking", err)
		return
	}

	booking, err := h.bookingService.Create(ctx, user.ID, availabilityID)
	if err != nil {
		h.reportError(ctx, b, chatID, "create_booking", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Вы записаны на занятие!\n\nЗапись #%d", booking.ID))
}

// HandleCancelBooking обрабатывает команду /cancel <id записи>
func (h *Handlers) HandleCancelBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reportError(ctx, b, chatID, "delete_booking", errUsage)
		return
	}
	bookingID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "delete_booking", err)
		return
	}

	if err := h.bookingService.Delete(ctx, user.ID, bookingID); err != nil {
		h.reportError(ctx, b, chatID, "delete_booking", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Запись #%d отменена", bookingID))
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	bookings, err := h.bookingService.ListForStudent(ctx, user.ID)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_bookings", err)
		return
	}

	if len(bookings) == 0 {
		h.sendMessage(ctx, b, chatID, "📅 У вас пока нет записей.\n\nСвободные слоты учителя: /slots <id учителя>")
		return
	}

	now := h.clock.Now()
	var sb strings.Builder
	sb.WriteString("📅 Ваши записи:\n\n")
	for _, booking := range bookings {
		sb.WriteString(formatBooking(booking, now))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}
