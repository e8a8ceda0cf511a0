package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task represents a scheduled background task
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler runs background tasks on fixed intervals. All tasks are
// cancelled as a unit when the scheduler stops; a failing task is logged
// and keeps firing on subsequent ticks.
type Scheduler struct {
	tasks   []*Task
	running bool
	mutex   sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make([]*Task, 0),
	}
}

// AddTask adds a task to the scheduler
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Start starts all registered tasks
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(ctx, task)
	}

	log.Println("[SCHEDULER] Started with", len(s.tasks), "tasks")
}

// Stop cancels all tasks and waits for them to wind down. No scheduled
// work is left dangling after Stop returns.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mutex.Unlock()

	s.wg.Wait()
	log.Println("[SCHEDULER] Stopped")
}

// runTask runs a task at its interval until the context is cancelled
func (s *Scheduler) runTask(ctx context.Context, task *Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task.Fn(ctx); err != nil {
				log.Printf("[SCHEDULER] Task %s failed: %v", task.Name, err)
			}
		case <-ctx.Done():
			log.Printf("[SCHEDULER] Task %s stopped", task.Name)
			return
		}
	}
}
