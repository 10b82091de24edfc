package controller

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL через сколько простоя ограничитель пользователя удаляется.
// За это время он успевает полностью восстановиться.
const limiterIdleTTL = 10 * time.Minute

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту команд от одного пользователя
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[int64]*userLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	logger    *zap.Logger
}

// NewRateLimiter создаёт ограничитель на perMinute команд в минуту
func NewRateLimiter(perMinute int, logger *zap.Logger) *RateLimiter {
	burst := perMinute / 6
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:  make(map[int64]*userLimiter),
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

// Allow проверяет можно ли обработать ещё одну команду пользователя
func (l *RateLimiter) Allow(telegramID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdleTTL {
		l.evictIdle(now)
	}

	entry, ok := l.limiters[telegramID]
	if !ok {
		entry = &userLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[telegramID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// evictIdle удаляет ограничители пользователей, молчавших дольше limiterIdleTTL.
// Вызывается под l.mu.
func (l *RateLimiter) evictIdle(now time.Time) {
	before := len(l.limiters)
	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, id)
		}
	}
	l.lastSweep = now

	if evicted := before - len(l.limiters); evicted > 0 {
		l.logger.Debug("Evicted idle rate limiters",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(l.limiters)))
	}
}

// Middleware отбрасывает сообщения пользователей, превысивших лимит
func (l *RateLimiter) Middleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message != nil && update.Message.From != nil {
			if !l.Allow(update.Message.From.ID) {
				l.logger.Warn("Rate limit exceeded", zap.Int64("telegram_id", update.Message.From.ID))
				return
			}
		}
		next(ctx, b, update)
	}
}
