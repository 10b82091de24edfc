package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleSubscribe обрабатывает команду /subscribe <id студента> <id предмета>
func (h *Handlers) HandleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.reportError(ctx, b, chatID, "create_subscription", errUsage)
		return
	}
	studentID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_subscription", err)
		return
	}
	subjectID, err := parseID(args[1])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_subscription", err)
		return
	}

	sub, err := h.subscriptionService.Create(ctx, user.ID, studentID, subjectID)
	if err != nil {
		h.reportError(ctx, b, chatID, "create_subscription", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🤝 Подписка #%d создана", sub.ID))
}

// HandleSubscriptions обрабатывает команду /subscriptions
func (h *Handlers) HandleSubscriptions(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	subs, err := h.subscriptionService.ListForUser(ctx, user.ID)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_subscriptions", err)
		return
	}

	if len(subs) == 0 {
		h.sendMessage(ctx, b, chatID, "🤝 У вас нет подписок.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🤝 Подписки:\n\n")
	for _, s := range subs {
		fmt.Fprintf(&sb, "#%d  учитель #%d, студент #%d, предмет #%d, с %s\n",
			s.ID, s.TutorID, s.StudentID, s.SubjectID, s.StartDate.Format(DateLayout))
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandlePurchase обрабатывает команду /purchase <id подписки> <id услуги>
func (h *Handlers) HandlePurchase(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.reportError(ctx, b, chatID, "purchase_hours", errUsage)
		return
	}
	subscriptionID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "purchase_hours", err)
		return
	}
	serviceID, err := parseID(args[1])
	if err != nil {
		h.reportError(ctx, b, chatID, "purchase_hours", err)
		return
	}

	block, err := h.hourService.Purchase(ctx, user.ID, subscriptionID, serviceID)
	if err != nil {
		h.reportError(ctx, b, chatID, "purchase_hours", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("💳 Пакет часов #%d добавлен в подписку #%d", block.ID, subscriptionID))
}

// HandleHours обрабатывает команду /hours <id подписки>
func (h *Handlers) HandleHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	subscriptionID, ok := h.singleID(ctx, b, update, "hours")
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Get(ctx, subscriptionID)
	if err != nil {
		h.reportError(ctx, b, chatID, "hours", err)
		return
	}
	if !sub.IsParticipant(user.ID) {
		h.sendError(ctx, b, chatID, "❌ Недостаточно прав для этого действия")
		return
	}

	summary, err := h.hourService.Hours(ctx, subscriptionID)
	if err != nil {
		h.reportError(ctx, b, chatID, "hours", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("Подписка #%d\n\n%s", subscriptionID, formatHours(summary)))
}

// HandleAllocate обрабатывает команду /allocate <id подписки> [дата время]
func (h *Handlers) HandleAllocate(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 && len(args) != 3 {
		h.reportError(ctx, b, chatID, "allocate_hours", errUsage)
		return
	}
	subscriptionID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "allocate_hours", err)
		return
	}

	var date time.Time
	if len(args) == 3 {
		date, err = parseDateTime(args[1], args[2])
		if err != nil {
			h.reportError(ctx, b, chatID, "allocate_hours", err)
			return
		}
	}

	appt, err := h.hourService.Allocate(ctx, user.ID, subscriptionID, date)
	if err != nil {
		h.reportError(ctx, b, chatID, "allocate_hours", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("📝 Занятие #%d списано из пакета #%d\n%s",
		appt.ID, appt.HourBlockID, FormatTimeRange(appt.LessonDate, appt.TimeRange().End)))
}

// HandleDeallocate обрабатывает команду /deallocate <id занятия>
func (h *Handlers) HandleDeallocate(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	appointmentID, ok := h.singleID(ctx, b, update, "deallocate_hours")
	if !ok {
		return
	}

	if err := h.hourService.Deallocate(ctx, user.ID, appointmentID); err != nil {
		h.reportError(ctx, b, chatID, "deallocate_hours", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("↩️ Занятие #%d возвращено в пакет", appointmentID))
}

// HandleAppointments обрабатывает команду /appointments <id подписки>
func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	subscriptionID, ok := h.singleID(ctx, b, update, "list_appointments")
	if !ok {
		return
	}

	appts, err := h.hourService.ListAppointments(ctx, user.ID, subscriptionID)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_appointments", err)
		return
	}

	if len(appts) == 0 {
		h.sendMessage(ctx, b, chatID, "📝 По подписке ещё нет занятий.")
		return
	}

	now := h.clock.Now()
	var sb strings.Builder
	sb.WriteString("📝 Занятия по подписке:\n\n")
	for _, a := range appts {
		sb.WriteString(formatAppointment(a, now))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// singleID разбирает единственный аргумент-идентификатор команды
func (h *Handlers) singleID(ctx context.Context, b *bot.Bot, update *models.Update, operation string) (int64, bool) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reportError(ctx, b, update.Message.Chat.ID, operation, errUsage)
		return 0, false
	}
	id, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, update.Message.Chat.ID, operation, err)
		return 0, false
	}
	return id, true
}
