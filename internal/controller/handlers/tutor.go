package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// scheduleHorizon на сколько вперёд показывается расписание
const scheduleHorizon = 14 * 24 * time.Hour

// HandleSubjects обрабатывает команду /subjects
func (h *Handlers) HandleSubjects(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	subjects, err := h.tutorService.ListSubjects(ctx)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_subjects", err)
		return
	}

	if len(subjects) == 0 {
		h.sendMessage(ctx, b, chatID, "📚 Пока нет ни одного предмета.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 Предметы:\n\n")
	for _, s := range subjects {
		fmt.Fprintf(&sb, "#%d  %s (%s)\n", s.ID, s.Name, s.Category)
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleAddSubject обрабатывает команду /addsubject <категория> <название>
func (h *Handlers) HandleAddSubject(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireTutor(ctx, b, update); !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) < 2 {
		h.reportError(ctx, b, chatID, "create_subject", errUsage)
		return
	}

	category, err := parseCategory(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_subject", err)
		return
	}

	subject, err := h.tutorService.CreateSubject(ctx, strings.Join(args[1:], " "), category)
	if err != nil {
		h.reportError(ctx, b, chatID, "create_subject", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Предмет #%d «%s» добавлен", subject.ID, subject.Name))
}

// HandleAddService обрабатывает команду /addservice <id предмета> <часы> <цена> <минуты>
func (h *Handlers) HandleAddService(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 4 {
		h.reportError(ctx, b, chatID, "create_service", errUsage)
		return
	}

	subjectID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_service", err)
		return
	}

	numbers := make([]int, 0, 3)
	for _, a := range args[1:] {
		n, err := parseInt(a)
		if err != nil {
			h.reportError(ctx, b, chatID, "create_service", err)
			return
		}
		numbers = append(numbers, n)
	}

	svc, err := h.tutorService.CreateService(ctx, user.ID, subjectID, numbers[0], numbers[1], numbers[2])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_service", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Услуга создана\n\n"+formatService(svc))
}

// HandleServices обрабатывает команду /services
func (h *Handlers) HandleServices(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	services, err := h.tutorService.ListServices(ctx, user.ID)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_services", err)
		return
	}

	if len(services) == 0 {
		h.sendMessage(ctx, b, chatID, "📝 У вас пока нет услуг. Добавьте: /addservice")
		return
	}

	var sb strings.Builder
	sb.WriteString("📝 Ваши услуги:\n\n")
	for _, s := range services {
		sb.WriteString(formatService(s))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleAddSlot обрабатывает команду /addslot <id услуги> <дата> <время>
func (h *Handlers) HandleAddSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 3 {
		h.reportError(ctx, b, chatID, "create_slot", errUsage)
		return
	}

	serviceID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_slot", err)
		return
	}
	start, err := parseDateTime(args[1], args[2])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_slot", err)
		return
	}

	av, err := h.slotService.Create(ctx, user.ID, serviceID, start)
	if err != nil {
		h.reportError(ctx, b, chatID, "create_slot", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Слот открыт\n\n"+formatSlot(av, h.clock.Now()))
}

// HandleDeleteSlot обрабатывает команду /delslot <id слота>
func (h *Handlers) HandleDeleteSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reportError(ctx, b, chatID, "delete_slot", errUsage)
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "delete_slot", err)
		return
	}

	if err := h.slotService.Delete(ctx, user.ID, id); err != nil {
		h.reportError(ctx, b, chatID, "delete_slot", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🗑 Слот #%d удалён", id))
}

// HandleSlots обрабатывает команду /slots [id учителя]
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	now := h.clock.Now()
	tutorID := user.ID
	from := now

	args := commandArgs(update.Message.Text)
	if len(args) > 2 {
		h.reportError(ctx, b, chatID, "list_slots", errUsage)
		return
	}
	if len(args) > 0 {
		id, err := parseID(args[0])
		if err != nil {
			h.reportError(ctx, b, chatID, "list_slots", err)
			return
		}
		tutorID = id
	}
	if len(args) > 1 {
		date, err := parseDate(args[1])
		if err != nil {
			h.reportError(ctx, b, chatID, "list_slots", err)
			return
		}
		from = date
	}

	slots, err := h.slotService.ListForTutor(ctx, tutorID, from, from.Add(scheduleHorizon))
	if err != nil {
		h.reportError(ctx, b, chatID, "list_slots", err)
		return
	}

	if len(slots) == 0 {
		h.sendMessage(ctx, b, chatID, "🗓 Нет слотов на две недели вперёд.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗓 Слоты на две недели вперёд:\n\n")
	for _, av := range slots {
		sb.WriteString(formatSlot(av, now))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleAddRecurring обрабатывает команду /addrecurring <id услуги> <дни> <время>
func (h *Handlers) HandleAddRecurring(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 3 {
		h.reportError(ctx, b, chatID, "create_recurring", errUsage)
		return
	}

	serviceID, err := parseID(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_recurring", err)
		return
	}
	weekdays, err := parseWeekdays(args[1])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_recurring", err)
		return
	}
	times, err := parseTimes(args[2])
	if err != nil {
		h.reportError(ctx, b, chatID, "create_recurring", err)
		return
	}

	groupID, err := h.slotService.CreateRecurring(ctx, user.ID, serviceID, weekdays, times)
	if err != nil {
		h.reportError(ctx, b, chatID, "create_recurring", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🔁 Еженедельное расписание создано\n\nГруппа: %s", groupID))
}

// HandleRecurring обрабатывает команду /recurring
func (h *Handlers) HandleRecurring(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	items, err := h.slotService.ListRecurring(ctx, user.ID)
	if err != nil {
		h.reportError(ctx, b, chatID, "list_recurring", err)
		return
	}

	if len(items) == 0 {
		h.sendMessage(ctx, b, chatID, "🔁 Нет еженедельных шаблонов.")
		return
	}

	h.sendMessage(ctx, b, chatID, "🔁 Еженедельные шаблоны:\n\n"+formatRecurring(items))
}

// HandleStopRecurring обрабатывает команду /stoprecurring <группа>
func (h *Handlers) HandleStopRecurring(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleRecurringGroup(ctx, b, update, "deactivate_recurring", h.slotService.DeactivateRecurringGroup, "⏸ Шаблон приостановлен")
}

// HandleDeleteRecurring обрабатывает команду /delrecurring <группа>
func (h *Handlers) HandleDeleteRecurring(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleRecurringGroup(ctx, b, update, "delete_recurring", h.slotService.DeleteRecurringGroup, "🗑 Шаблон удалён")
}

func (h *Handlers) handleRecurringGroup(
	ctx context.Context,
	b *bot.Bot,
	update *models.Update,
	operation string,
	action func(ctx context.Context, tutorID int64, groupID uuid.UUID) error,
	done string,
) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reportError(ctx, b, chatID, operation, errUsage)
		return
	}
	groupID, err := uuid.Parse(args[0])
	if err != nil {
		h.reportError(ctx, b, chatID, operation, errUsage)
		return
	}

	if err := action(ctx, user.ID, groupID); err != nil {
		h.reportError(ctx, b, chatID, operation, err)
		return
	}

	h.sendMessage(ctx, b, chatID, done)
}
