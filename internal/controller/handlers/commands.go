package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"Для всех:\n" +
	"/start - Начать работу с ботом\n" +
	"/subjects - Список предметов\n" +
	"/slots <id учителя> [дд.мм.гггг] - Слоты учителя\n" +
	"/book <id слота> - Записаться на занятие\n" +
	"/cancel <id записи> - Отменить запись\n" +
	"/mybookings - Мои записи\n" +
	"/subscriptions - Мои подписки\n" +
	"/purchase <id подписки> <id услуги> - Купить пакет часов\n" +
	"/hours <id подписки> - Остаток часов\n" +
	"/appointments <id подписки> - Занятия по подписке\n\n" +
	"Для учителей:\n" +
	"/becometutor - Стать учителем\n" +
	"/addsubject <категория> <название> - Добавить предмет\n" +
	"/addservice <id предмета> <часы> <цена> <минуты> - Добавить услугу\n" +
	"/services - Мои услуги\n" +
	"/addslot <id услуги> <дд.мм.гггг> <чч:мм> - Открыть слот\n" +
	"/delslot <id слота> - Удалить слот\n" +
	"/slots - Моё расписание\n" +
	"/addrecurring <id услуги> <дни 1,3,5> <время 10:00,18:00> - Еженедельные слоты\n" +
	"/recurring - Мои шаблоны\n" +
	"/stoprecurring <группа> - Приостановить шаблон\n" +
	"/delrecurring <группа> - Удалить шаблон\n" +
	"/subscribe <id студента> <id предмета> - Создать подписку\n" +
	"/allocate <id подписки> [дд.мм.гггг чч:мм] - Списать занятие\n" +
	"/deallocate <id занятия> - Вернуть занятие\n" +
	"/lesson <id занятия> <yes|no> [тема] - Тема и отметка пропуска\n\n" +
	"Категории: languages, science, maths, arts, social\n" +
	"Время указывается в UTC"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Добро пожаловать в Tutoring Scheduler - бот для записи на занятия к репетиторам.\n\n"+
			"🆔 Ваш ID: %d\n\n"+
			"Список команд: /help",
		registeredUser.FirstName,
		registeredUser.ID,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleBecomeTutor обрабатывает команду /becometutor
func (h *Handlers) HandleBecomeTutor(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	if err := h.userService.BecomeTutor(ctx, user.ID); err != nil {
		h.reportError(ctx, b, chatID, "become_tutor", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "🎓 Теперь вы учитель!\n\n"+
		"Добавьте предмет: /addsubject\n"+
		"Затем услугу: /addservice")
}
