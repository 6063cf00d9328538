package command

import (
	"fmt"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/models"
	"github.com/starford/taskline/internal/tasklist"
)

// Saver mirrors the full task list to durable storage.
type Saver interface {
	SaveAll(tasks []models.Task) error
}

// Outcome describes what executing a command did, for the presentation
// layer to render.
//
// Task and Position are the task added, marked done or deleted and its
// 1-based position (the former one for delete). Count is the list size
// after execution. Entries holds the rows for list and find. Keyword is
// the find keyword or the unrecognized word.
type Outcome struct {
	Kind     Kind
	Task     models.Task
	Position int
	Count    int
	Entries  []tasklist.Entry
	Keyword  string
}

// Exit reports whether the session should end.
func (o Outcome) Exit() bool {
	return o.Kind == KindExit
}

// Err returns ErrUnrecognizedCommand for an Unknown outcome and nil otherwise.
func (o Outcome) Err() error {
	if o.Kind != KindUnknown {
		return nil
	}
	return fmt.Errorf("%q: %w", o.Keyword, apperr.ErrUnrecognizedCommand)
}

// Execute applies cmd to tasks and, for mutating commands, saves the whole
// list through store. The returned Outcome is valid even when the error
// wraps apperr.ErrIO: the in-memory change stands and the durable copy is
// stale until the next successful save.
func Execute(cmd Command, tasks *tasklist.TaskList, store Saver) (Outcome, error) {
	out := Outcome{Kind: cmd.Kind}

	switch cmd.Kind {
	case KindExit:
		out.Count = tasks.Size()
		return out, nil

	case KindList:
		out.Entries = tasks.Entries()
		out.Count = tasks.Size()
		return out, nil

	case KindFind:
		out.Entries = tasks.Find(cmd.Keyword)
		out.Keyword = cmd.Keyword
		out.Count = tasks.Size()
		return out, nil

	case KindDone:
		t, err := tasks.MarkDone(cmd.Index - 1)
		if err != nil {
			return out, err
		}
		out.Task, out.Position = t, cmd.Index

	case KindDelete:
		t, err := tasks.Remove(cmd.Index - 1)
		if err != nil {
			return out, err
		}
		out.Task, out.Position = t, cmd.Index

	case KindAddTodo, KindAddDeadline, KindAddEvent:
		t := cmd.task()
		tasks.Add(t)
		out.Task, out.Position = t, tasks.Size()

	default:
		out.Keyword = cmd.Keyword
		out.Count = tasks.Size()
		return out, nil
	}

	out.Count = tasks.Size()
	if err := store.SaveAll(tasks.All()); err != nil {
		return out, fmt.Errorf("%w: save after %s: %w", apperr.ErrIO, cmd.Kind, err)
	}
	return out, nil
}
