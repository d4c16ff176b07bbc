// Package worker runs synthesis and video jobs in a bounded pool so
// heavyweight subprocess work never piles up.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// State is a task's lifecycle position.
type State int

const (
	Queued State = iota
	Processing
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one unit of work and its outcome.
type Task struct {
	ID          string
	Kind        string
	State       State
	Result      string
	Err         error
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// Fn is the work a task performs; it returns a result string (usually
// an output file path).
type Fn func(ctx context.Context) (string, error)

// Pool runs tasks with bounded concurrency and keeps finished task
// records around for a retention window so callers can poll them.
type Pool struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	sem    chan struct{}
	retain time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates a Pool. maxConcurrent <= 0 defaults to 2; retainSecs
// <= 0 defaults to five minutes.
func NewPool(maxConcurrent, retainSecs int) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	retain := 5 * time.Minute
	if retainSecs > 0 {
		retain = time.Duration(retainSecs) * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(map[string]*Task),
		sem:    make(chan struct{}, maxConcurrent),
		retain: retain,
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(1)
	go p.sweep()

	return p
}

// Submit queues fn and returns its task ID immediately.
func (p *Pool) Submit(kind string, fn Fn) string {
	id := uuid.NewString()
	task := &Task{
		ID:          id,
		Kind:        kind,
		State:       Queued,
		SubmittedAt: time.Now(),
	}

	p.mu.Lock()
	p.tasks[id] = task
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(task, fn)

	logger.Debugf("[worker] queued %s task %s", kind, id)
	return id
}

func (p *Pool) run(task *Task, fn Fn) {
	defer p.wg.Done()

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-p.ctx.Done():
		p.finish(task, "", p.ctx.Err())
		return
	}

	p.mu.Lock()
	task.State = Processing
	p.mu.Unlock()

	result, err := fn(p.ctx)
	p.finish(task, result, err)
}

func (p *Pool) finish(task *Task, result string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	task.FinishedAt = time.Now()
	if err != nil {
		task.State = Failed
		task.Err = err
		logger.Warnf("[worker] %s task %s failed: %v", task.Kind, task.ID, err)
		return
	}
	task.State = Completed
	task.Result = result
	logger.Debugf("[worker] %s task %s completed", task.Kind, task.ID)
}

// Status returns a snapshot of a task, or false if it is unknown (never
// submitted, or already swept).
func (p *Pool) Status(id string) (Task, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	task, ok := p.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Await polls a task until it finishes or ctx expires, returning the
// result string.
func (p *Pool) Await(ctx context.Context, id string) (string, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		task, ok := p.Status(id)
		if !ok {
			return "", fmt.Errorf("unknown task %s", id)
		}
		switch task.State {
		case Completed:
			return task.Result, nil
		case Failed:
			return "", task.Err
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stats counts tasks per state.
func (p *Pool) Stats() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make(map[string]int)
	for _, t := range p.tasks {
		stats[t.State.String()]++
	}
	return stats
}

// sweep drops finished task records past the retention window.
func (p *Pool) sweep() {
	defer p.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			for id, t := range p.tasks {
				done := t.State == Completed || t.State == Failed
				if done && time.Since(t.FinishedAt) > p.retain {
					delete(p.tasks, id)
				}
			}
			p.mu.Unlock()
		}
	}
}

// Shutdown cancels running work and waits for goroutines to exit.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Retry runs fn up to attempts times with exponential backoff, starting
// at initial delay.
func Retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := initial
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
