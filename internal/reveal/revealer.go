package reveal

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/zjrosen/quillkey/internal/log"
)

// Config paces reveals. Zero values use the defaults.
type Config struct {
	Budget   time.Duration
	Interval time.Duration
	Clock    clock.Clock
}

// Revealer runs at most one task per surface. Surfaces are compared by
// identity, so they must be comparable (pointer types in practice).
type Revealer struct {
	clock    clock.Clock
	interval time.Duration
	maxSteps int

	mu    sync.Mutex
	tasks map[Surface]*Task
	wg    sync.WaitGroup
}

// NewRevealer creates a Revealer from cfg.
func NewRevealer(cfg Config) *Revealer {
	if cfg.Budget <= 0 {
		cfg.Budget = DefaultBudget
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Revealer{
		clock:    cfg.Clock,
		interval: cfg.Interval,
		maxSteps: MaxSteps(cfg.Budget, cfg.Interval),
		tasks:    make(map[Surface]*Task),
	}
}

// MaxSteps returns the step bound applied to every task.
func (r *Revealer) MaxSteps() int {
	return r.maxSteps
}

// Start cancels any reveal running on surface, clears it and reveals text.
// The first chunk is written on the first tick.
func (r *Revealer) Start(surface Surface, text string, onDone func()) *Task {
	task := NewTask(surface, text, r.maxSteps, onDone)

	r.mu.Lock()
	if prev, ok := r.tasks[surface]; ok {
		prev.Cancel()
		log.Debug(log.CatReveal, "Cancelled running reveal for restart")
	}
	surface.Reset()
	r.tasks[surface] = task
	r.mu.Unlock()

	log.Debug(log.CatReveal, "Reveal started",
		"runes", len(task.target),
		"chunk", task.chunk,
		"steps", task.Steps(),
	)

	ticker := r.clock.Ticker(r.interval)
	r.wg.Add(1)
	go r.run(surface, task, ticker)
	return task
}

func (r *Revealer) run(surface Surface, task *Task, ticker *clock.Ticker) {
	defer r.wg.Done()
	defer r.release(surface, task)
	defer ticker.Stop()

	for {
		select {
		case <-task.stop:
			return
		case <-ticker.C:
			if !task.Step() {
				return
			}
		}
	}
}

// release forgets task unless a newer one replaced it.
func (r *Revealer) release(surface Surface, task *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tasks[surface] == task {
		delete(r.tasks, surface)
	}
}

// Cancel stops the reveal on surface, if any. The surface keeps what was
// already written.
func (r *Revealer) Cancel(surface Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task, ok := r.tasks[surface]; ok {
		task.Cancel()
		delete(r.tasks, surface)
	}
}

// Running reports whether a live reveal owns surface.
func (r *Revealer) Running(surface Surface) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[surface]
	return ok && !task.Cancelled() && !task.Done()
}

// Stop cancels every reveal and waits for their loops to exit.
func (r *Revealer) Stop() {
	r.mu.Lock()
	for s, task := range r.tasks {
		task.Cancel()
		delete(r.tasks, s)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
