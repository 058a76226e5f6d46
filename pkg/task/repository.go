package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Add(ctx context.Context, task Task) (Task, error)
	Remove(ctx context.Context, id uuid.UUID) (Task, error)
	Clear(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Task, error)
	Span(ctx context.Context) (time.Time, time.Time, error)
}

// Store keeps tasks in memory in insertion order. Equal tasks may coexist;
// each one is told apart by the Id issued when it is added.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
	newId func() uuid.UUID
}

func NewStore() *Store {
	return &Store{newId: uuid.New}
}

// Add appends task, issuing a fresh Id when it has none.
func (s *Store) Add(ctx context.Context, task Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.Id == uuid.Nil {
		task.Id = s.newId()
	}
	for _, t := range s.tasks {
		if t.Id == task.Id {
			return Task{}, fmt.Errorf("task %s already stored", task.Id)
		}
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Remove deletes the task with the given Id and returns it. Removing an
// unknown Id fails with ErrTaskNotFound.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.Id == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// Clear removes every task and returns how many there were.
func (s *Store) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	s.tasks = nil
	return n, nil
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List(ctx context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Span returns the earliest start and the latest end over all tasks.
func (s *Store) Span(ctx context.Context) (time.Time, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.tasks) == 0 {
		return time.Time{}, time.Time{}, ErrEmptyStore
	}
	minStart, maxEnd := s.tasks[0].Start, s.tasks[0].End
	for _, t := range s.tasks[1:] {
		if t.Start.Before(minStart) {
			minStart = t.Start
		}
		if t.End.After(maxEnd) {
			maxEnd = t.End
		}
	}
	return minStart, maxEnd, nil
}
