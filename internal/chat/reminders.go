// ABOUTME: Medicine reminder timers set after prescription analysis
// ABOUTME: Each reminder fires once after a short randomized delay

package chat

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Reminder firing delay bounds: [5s, 7s).
const (
	reminderDelayBase   = 5 * time.Second
	reminderDelayJitter = 2 * time.Second
)

// Reminders schedules one-shot medicine reminders. The notify callback
// runs on the timer goroutine when a reminder fires.
type Reminders struct {
	mu     sync.Mutex
	timers []*time.Timer
	delay  func() time.Duration
	notify func(name, frequency string)
	logger *slog.Logger
}

// NewReminders creates a scheduler calling notify for each fired
// reminder, after the default randomized delay.
func NewReminders(notify func(name, frequency string), logger *slog.Logger) *Reminders {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminders{
		delay: func() time.Duration {
			return reminderDelayBase + time.Duration(rand.Int63n(int64(reminderDelayJitter)))
		},
		notify: notify,
		logger: logger.With("component", "reminders"),
	}
}

// SetDelay overrides the firing delay.
func (r *Reminders) SetDelay(fn func() time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delay = fn
}

// Set schedules a reminder for the named medicine.
func (r *Reminders) Set(name, frequency string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug("reminder scheduled", "medicine", name, "frequency", frequency)
	t := time.AfterFunc(r.delay(), func() {
		r.notify(name, frequency)
	})
	r.timers = append(r.timers, t)
}

// Stop cancels all pending reminders.
func (r *Reminders) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}
