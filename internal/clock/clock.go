package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Real возвращает системное время в UTC
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed часы с заданным временем, используются в тестах
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed создаёт часы, остановленные на now
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (c *Fixed) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set переставляет часы
func (c *Fixed) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Advance сдвигает часы на d
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
