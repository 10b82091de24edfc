package handlers

import (
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
	"go.uber.org/zap"
)

// Services сервисы, которые нужны обработчикам команд
type Services struct {
	Users         *service.UserService
	Tutors        *service.TutorService
	Slots         *service.SlotService
	Bookings      *service.BookingService
	Subscriptions *service.SubscriptionService
	Hours         *service.HourService
	Lessons       *service.LessonService
	Clock         clock.Clock
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	tutorService        *service.TutorService
	slotService         *service.SlotService
	bookingService      *service.BookingService
	subscriptionService *service.SubscriptionService
	hourService         *service.HourService
	lessonService       *service.LessonService
	clock               clock.Clock
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(services Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		userService:         services.Users,
		tutorService:        services.Tutors,
		slotService:         services.Slots,
		bookingService:      services.Bookings,
		subscriptionService: services.Subscriptions,
		hourService:         services.Hours,
		lessonService:       services.Lessons,
		clock:               services.Clock,
		logger:              logger,
	}
}
