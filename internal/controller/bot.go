package controller

import (
	"context"

	"github.com/Freeeeeet/tutoring_scheduler/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services handlers.Services,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(services, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	routes := map[string]bot.HandlerFunc{
		"start":         c.handlers.HandleStart,
		"help":          c.handlers.HandleHelp,
		"becometutor":   c.handlers.HandleBecomeTutor,
		"subjects":      c.handlers.HandleSubjects,
		"slots":         c.handlers.HandleSlots,
		"book":          c.handlers.HandleBook,
		"cancel":        c.handlers.HandleCancelBooking,
		"mybookings":    c.handlers.HandleMyBookings,
		"subscriptions": c.handlers.HandleSubscriptions,
		"purchase":      c.handlers.HandlePurchase,
		"hours":         c.handlers.HandleHours,
		"appointments":  c.handlers.HandleAppointments,

		// Команды для учителей
		"addsubject":    c.handlers.HandleAddSubject,
		"addservice":    c.handlers.HandleAddService,
		"services":      c.handlers.HandleServices,
		"addslot":       c.handlers.HandleAddSlot,
		"delslot":       c.handlers.HandleDeleteSlot,
		"addrecurring":  c.handlers.HandleAddRecurring,
		"recurring":     c.handlers.HandleRecurring,
		"stoprecurring": c.handlers.HandleStopRecurring,
		"delrecurring":  c.handlers.HandleDeleteRecurring,
		"subscribe":     c.handlers.HandleSubscribe,
		"allocate":      c.handlers.HandleAllocate,
		"deallocate":    c.handlers.HandleDeallocate,
		"lesson":        c.handlers.HandleUpdateLesson,
	}

	for name, handler := range routes {
		c.bot.RegisterHandlerMatchFunc(MatchCommand(name), handler)
	}

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "subjects", Description: "📚 Список предметов"},
		{Command: "slots", Description: "🗓 Слоты учителя"},
		{Command: "mybookings", Description: "📅 Мои записи на занятия"},
		{Command: "subscriptions", Description: "🤝 Мои подписки"},
		{Command: "becometutor", Description: "🎓 Стать учителем"},
		{Command: "services", Description: "📝 Мои услуги (учитель)"},
		{Command: "recurring", Description: "🔁 Еженедельные шаблоны (учитель)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
