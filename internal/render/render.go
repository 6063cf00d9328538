// Package render turns command outcomes and errors into console text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/command"
	"github.com/starford/taskline/internal/tasklist"
)

// Greeting is printed when the session starts.
const Greeting = "Hello! I'm taskline.\nWhat can I do for you?"

// Outcome returns the text shown after a command runs.
func Outcome(o command.Outcome) string {
	switch o.Kind {
	case command.KindExit:
		return "Bye. Hope to see you again soon!"
	case command.KindList:
		if len(o.Entries) == 0 {
			return "Your task list is empty."
		}
		return "Here are the tasks in your list:\n" + entries(o.Entries)
	case command.KindFind:
		if len(o.Entries) == 0 {
			return fmt.Sprintf("No tasks match %q.", o.Keyword)
		}
		return "Here are the matching tasks in your list:\n" + entries(o.Entries)
	case command.KindDone:
		return "Nice! I've marked this task as done:\n  " + o.Task.String()
	case command.KindDelete:
		return "Noted. I've removed this task:\n  " + o.Task.String() + "\n" + count(o.Count)
	case command.KindAddTodo, command.KindAddDeadline, command.KindAddEvent:
		return "Got it. I've added this task:\n  " + o.Task.String() + "\n" + count(o.Count)
	}
	return "I'm sorry, but I don't know what that means :-("
}

// Error returns the text shown for a failed line. Parse errors show their
// own message; storage failures say the change was kept in memory.
func Error(err error) string {
	var pe *apperr.ParseError
	switch {
	case errors.As(err, &pe):
		return "OOPS!!! " + pe.Message
	case errors.Is(err, apperr.ErrIO):
		return "Warning: could not save your tasks (" + err.Error() + "). The change is kept for this session."
	}
	return "OOPS!!! " + err.Error()
}

func count(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func entries(es []tasklist.Entry) string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d.%s", e.Position, e.Task)
	}
	return b.String()
}
