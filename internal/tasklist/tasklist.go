// Package tasklist holds the session's ordered, in-memory list of tasks.
package tasklist

import (
	"fmt"
	"strings"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/models"
)

// TaskList is an ordered collection of tasks, 0-indexed. It never persists
// anything itself; callers mirror it to storage after mutating it.
type TaskList struct {
	tasks []models.Task
}

// Entry pairs a task with its 1-based position in the list.
type Entry struct {
	Position int
	Task     models.Task
}

// New returns a list holding the given tasks in order.
func New(tasks ...models.Task) *TaskList {
	l := &TaskList{tasks: make([]models.Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Size returns the number of tasks.
func (l *TaskList) Size() int {
	return len(l.tasks)
}

// Get returns the task at i.
func (l *TaskList) Get(i int) (models.Task, error) {
	if err := l.check(i); err != nil {
		return models.Task{}, err
	}
	return l.tasks[i], nil
}

// Add appends t to the end of the list.
func (l *TaskList) Add(t models.Task) {
	l.tasks = append(l.tasks, t)
}

// Remove deletes the task at i and returns it. Later tasks shift down by one.
func (l *TaskList) Remove(i int) (models.Task, error) {
	if err := l.check(i); err != nil {
		return models.Task{}, err
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// MarkDone marks the task at i done and returns its new state.
func (l *TaskList) MarkDone(i int) (models.Task, error) {
	if err := l.check(i); err != nil {
		return models.Task{}, err
	}
	l.tasks[i].MarkDone()
	return l.tasks[i], nil
}

// All returns a copy of the tasks in order.
func (l *TaskList) All() []models.Task {
	out := make([]models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Entries returns every task with its 1-based position.
func (l *TaskList) Entries() []Entry {
	out := make([]Entry, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = Entry{Position: i + 1, Task: t}
	}
	return out
}

// Find returns the tasks whose description contains keyword, in list order.
// Matching is a case-sensitive substring test; an empty keyword matches all.
func (l *TaskList) Find(keyword string) []Entry {
	var out []Entry
	for i, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			out = append(out, Entry{Position: i + 1, Task: t})
		}
	}
	return out
}

func (l *TaskList) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("tasklist: index %d of %d: %w", i, len(l.tasks), apperr.ErrIndexOutOfRange)
	}
	return nil
}
