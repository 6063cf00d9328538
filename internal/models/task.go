// Package models defines the domain types for taskline.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind tags a task variant. The values double as the persisted tag.
type Kind string

// Task variants.
const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// HasTime reports whether tasks of this kind carry a timestamp.
func (k Kind) HasTime() bool {
	return k == KindDeadline || k == KindEvent
}

// DisplayLayout is how timestamps are shown to the user.
const DisplayLayout = "Jan 2 2006 15:04"

// Task is a todo, deadline or event. When is the deadline's "by" or the
// event's "at" and stays zero for todos.
type Task struct {
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	When        time.Time `json:"when,omitzero"`
}

// NewTodo returns an undone todo.
func NewTodo(desc string) Task {
	return Task{Kind: KindTodo, Description: desc}
}

// NewDeadline returns an undone deadline due by the given time.
func NewDeadline(desc string, by time.Time) Task {
	return Task{Kind: KindDeadline, Description: desc, When: by}
}

// NewEvent returns an undone event happening at the given time.
func NewEvent(desc string, at time.Time) Task {
	return Task{Kind: KindEvent, Description: desc, When: at}
}

// IsDone reports whether the task has been marked done.
func (t Task) IsDone() bool {
	return t.Done
}

// MarkDone marks the task done. Marking a done task again is a no-op.
func (t *Task) MarkDone() {
	t.Done = true
}

// Describe returns the task's description.
func (t Task) Describe() string {
	return t.Description
}

// String renders the task the way the list shows it, e.g.
// "[D][ ] return book (by: Dec 2 2019 18:00)".
func (t Task) String() string {
	mark := " "
	if t.Done {
		mark = "X"
	}
	s := fmt.Sprintf("[%s][%s] %s", t.Kind, mark, t.Description)
	switch t.Kind {
	case KindDeadline:
		s += " (by: " + t.When.Format(DisplayLayout) + ")"
	case KindEvent:
		s += " (at: " + t.When.Format(DisplayLayout) + ")"
	}
	return s
}

// Validate checks a task read back from storage.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Kind, validation.Required, validation.In(KindTodo, KindDeadline, KindEvent)),
		validation.Field(&t.Description, validation.Required, validation.By(notBlank)),
		validation.Field(&t.When,
			validation.When(t.Kind.HasTime(), validation.Required).Else(validation.Empty)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
