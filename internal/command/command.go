// Package command defines the validated unit of work produced by the
// interpreter and its execution against a task list.
package command

import (
	"time"

	"github.com/starford/taskline/internal/models"
)

// Kind tags a command variant.
type Kind int

// Command variants. The zero Kind is KindNone, which no interpreted
// command carries.
const (
	KindNone Kind = iota
	KindUnknown
	KindExit
	KindList
	KindDone
	KindDelete
	KindAddTodo
	KindAddDeadline
	KindAddEvent
	KindFind
)

var kindNames = [...]string{
	KindNone:        "none",
	KindUnknown:     "unknown",
	KindExit:        "bye",
	KindList:        "list",
	KindDone:        "done",
	KindDelete:      "delete",
	KindAddTodo:     "todo",
	KindAddDeadline: "deadline",
	KindAddEvent:    "event",
	KindFind:        "find",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Mutates reports whether executing commands of this kind changes the list.
func (k Kind) Mutates() bool {
	switch k {
	case KindDone, KindDelete, KindAddTodo, KindAddDeadline, KindAddEvent:
		return true
	}
	return false
}

// Command is one validated user intent. Only the fields its Kind uses are
// set: Index (1-based) for done/delete, Description and When for the add
// variants, Keyword for find and for the unrecognized word of Unknown.
// Commands are values and are never modified after construction.
type Command struct {
	Kind        Kind
	Index       int
	Description string
	When        time.Time
	Keyword     string
}

// Exit ends the session.
func Exit() Command { return Command{Kind: KindExit} }

// List shows every task.
func List() Command { return Command{Kind: KindList} }

// Done marks the task at the 1-based index done.
func Done(index int) Command { return Command{Kind: KindDone, Index: index} }

// Delete removes the task at the 1-based index.
func Delete(index int) Command { return Command{Kind: KindDelete, Index: index} }

// AddTodo appends a todo.
func AddTodo(desc string) Command {
	return Command{Kind: KindAddTodo, Description: desc}
}

// AddDeadline appends a deadline due by the given time.
func AddDeadline(desc string, by time.Time) Command {
	return Command{Kind: KindAddDeadline, Description: desc, When: by}
}

// AddEvent appends an event at the given time.
func AddEvent(desc string, at time.Time) Command {
	return Command{Kind: KindAddEvent, Description: desc, When: at}
}

// Find searches descriptions for keyword.
func Find(keyword string) Command { return Command{Kind: KindFind, Keyword: keyword} }

// Unknown is produced for any keyword the interpreter does not recognize.
func Unknown(word string) Command { return Command{Kind: KindUnknown, Keyword: word} }

// task builds the task an add command appends.
func (c Command) task() models.Task {
	switch c.Kind {
	case KindAddDeadline:
		return models.NewDeadline(c.Description, c.When)
	case KindAddEvent:
		return models.NewEvent(c.Description, c.When)
	default:
		return models.NewTodo(c.Description)
	}
}
