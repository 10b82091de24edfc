package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SlotGenerator создаёт слоты по регулярным шаблонам
type SlotGenerator interface {
	GenerateRecurring(ctx context.Context, weeksAhead int) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	generator  SlotGenerator
	interval   time.Duration
	weeksAhead int
	logger     *zap.Logger
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(generator SlotGenerator, interval time.Duration, weeksAhead int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		generator:  generator,
		interval:   interval,
		weeksAhead: weeksAhead,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("interval", s.interval),
		zap.Int("weeks_ahead", s.weeksAhead),
	)

	s.wg.Add(1)
	go s.runSlotGenerationTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runSlotGenerationTask периодически генерирует слоты по шаблонам
func (s *Scheduler) runSlotGenerationTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.generateSlots(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateSlots(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot generation task cancelled")
			return
		}
	}
}

func (s *Scheduler) generateSlots(ctx context.Context) {
	created, err := s.generator.GenerateRecurring(ctx, s.weeksAhead)
	if err != nil {
		s.logger.Error("Failed to generate slots", zap.Error(err))
		return
	}

	s.logger.Info("Automatic slot generation completed", zap.Int("created", created))
}
