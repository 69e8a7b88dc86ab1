package stopwatch

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zgpcy/stopwatch/internal/clock"
	"github.com/zgpcy/stopwatch/internal/logger"
)

// TickInterval is the period of the accumulation tick
const TickInterval = time.Second

// Observer is notified every time the accumulated seconds change
type Observer interface {
	OnTimeChanged(sw *Stopwatch)
}

// ObserverFunc adapts a plain function to the Observer interface
type ObserverFunc func(sw *Stopwatch)

// OnTimeChanged calls f(sw)
func (f ObserverFunc) OnTimeChanged(sw *Stopwatch) {
	f(sw)
}

// Snapshot is a consistent view of the stopwatch state
type Snapshot struct {
	ID           string `json:"id"`
	TotalSeconds uint64 `json:"total_seconds"`
	Running      bool   `json:"running"`
}

// Stopwatch accumulates whole seconds while running.
//
// All methods are safe for concurrent use. Observer callbacks run one at a
// time, on the tick goroutine or on the goroutine calling Reset, with no
// internal lock held. A callback may call Start, Stop or Reset; the call
// takes effect before it returns, and the notification it causes is
// delivered after the current callback returns.
type Stopwatch struct {
	id     string
	clock  clock.Clock
	logger *logger.Logger

	// opMu serialises Start, Stop, Reset, Close and tick accounting
	opMu   sync.Mutex
	ticker clock.Ticker
	gen    uint64 // identifies the active ticker

	mu           sync.RWMutex
	totalSeconds uint64
	running      bool
	observer     Observer

	// qmu guards the pending notifications and the single-deliverer flag
	qmu        sync.Mutex
	queue      []Observer
	delivering bool
}

// New creates a stopped, zeroed stopwatch on the system clock
func New(log *logger.Logger) *Stopwatch {
	return NewWithClock(clock.RealClock{}, log)
}

// NewWithClock creates a stopped, zeroed stopwatch on the given clock
func NewWithClock(clk clock.Clock, log *logger.Logger) *Stopwatch {
	id := uuid.NewString()
	return &Stopwatch{
		id:     id,
		clock:  clk,
		logger: log.WithFields("stopwatch_id", id),
	}
}

// ID returns the instance identifier
func (s *Stopwatch) ID() string {
	return s.id
}

// TotalSeconds returns the accumulated seconds
func (s *Stopwatch) TotalSeconds() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSeconds
}

// IsRunning reports whether the stopwatch is accumulating time
func (s *Stopwatch) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Snapshot returns the id, accumulated seconds and running state together
func (s *Stopwatch) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ID:           s.id,
		TotalSeconds: s.totalSeconds,
		Running:      s.running,
	}
}

// SetObserver replaces the observer. A nil observer disables notifications.
func (s *Stopwatch) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Start begins accumulating time. It is a no-op if already running.
func (s *Stopwatch) Start() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.ticker != nil {
		return
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.gen++
	gen := s.gen
	s.ticker = s.clock.Every(TickInterval, func() { s.tick(gen) })

	s.logger.Debug("Stopwatch started", "total_seconds", s.TotalSeconds())
}

// Stop pauses the stopwatch without clearing the accumulated time.
// It is a no-op if not running.
func (s *Stopwatch) Stop() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.ticker == nil {
		return
	}
	s.cancelTicker()

	s.logger.Debug("Stopwatch stopped", "total_seconds", s.TotalSeconds())
}

// Reset stops the stopwatch, zeroes the accumulated time and notifies the
// observer. The observer is notified on every call, even when the
// stopwatch was already stopped at zero.
func (s *Stopwatch) Reset() {
	s.opMu.Lock()
	s.cancelTicker()

	s.mu.Lock()
	s.totalSeconds = 0
	obs := s.observer
	s.mu.Unlock()

	s.enqueue(obs)
	s.opMu.Unlock()

	s.logger.Debug("Stopwatch reset")
	s.deliver()
}

// Close releases the timer resource. The stopwatch keeps its accumulated
// time and may be started again.
func (s *Stopwatch) Close() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.cancelTicker()
}

// cancelTicker stops the active ticker, if any. Caller holds opMu.
func (s *Stopwatch) cancelTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// tick is the recurring callback of the ticker created for generation gen
func (s *Stopwatch) tick(gen uint64) {
	s.opMu.Lock()

	// the ticker was cancelled after this tick was scheduled
	if s.ticker == nil || s.gen != gen {
		s.opMu.Unlock()
		return
	}

	s.mu.Lock()
	s.totalSeconds++
	total := s.totalSeconds
	obs := s.observer
	s.mu.Unlock()

	s.enqueue(obs)
	s.opMu.Unlock()

	s.logger.Debug("Stopwatch tick", "total_seconds", total)
	s.deliver()
}

// enqueue records a pending notification. Caller holds opMu, so the queue
// order matches the order of the changes.
func (s *Stopwatch) enqueue(obs Observer) {
	if obs == nil {
		return
	}
	s.qmu.Lock()
	s.queue = append(s.queue, obs)
	s.qmu.Unlock()
}

// deliver drains the queue unless another goroutine, or an outer frame of
// this one, is already draining it. Observers run without any lock held.
func (s *Stopwatch) deliver() {
	s.qmu.Lock()
	if s.delivering {
		s.qmu.Unlock()
		return
	}
	s.delivering = true
	s.qmu.Unlock()

	done := false
	defer func() {
		// an observer panicked; hand the role back so later changes are delivered
		if !done {
			s.qmu.Lock()
			s.delivering = false
			s.qmu.Unlock()
		}
	}()

	for {
		s.qmu.Lock()
		if len(s.queue) == 0 {
			s.delivering = false
			done = true
			s.qmu.Unlock()
			return
		}
		obs := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.qmu.Unlock()

		obs.OnTimeChanged(s)
	}
}
