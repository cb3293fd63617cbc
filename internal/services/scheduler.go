package services

import (
	"time"

	"go.uber.org/zap"
)

// Scheduler runs deferred one-shot callbacks.
type Scheduler interface {
	After(delay time.Duration, fn func())
}

// TimerScheduler fires each callback exactly once on its own timer. Scheduled
// callbacks cannot be cancelled.
type TimerScheduler struct {
	log *zap.Logger
}

func NewTimerScheduler(log *zap.Logger) *TimerScheduler {
	return &TimerScheduler{log: log}
}

// After runs fn once delay has elapsed. A panic in fn is logged and swallowed
// so one bad callback cannot take the server down.
func (s *TimerScheduler) After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Deferred callback panicked", zap.Any("panic", r))
			}
		}()
		fn()
	})
}
