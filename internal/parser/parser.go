// Package parser turns one raw input line into a validated command.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/command"
)

const (
	bySeparator = "/by"
	atSeparator = "/at"
)

// Interpreter parses input lines. Dates are read in its location.
type Interpreter struct {
	loc *time.Location
}

// New returns an Interpreter that reads dates in loc, or in time.Local
// when loc is nil.
func New(loc *time.Location) *Interpreter {
	if loc == nil {
		loc = time.Local
	}
	return &Interpreter{loc: loc}
}

// Interpret parses line against a list currently holding count tasks.
// Index arguments are range-checked here, so the command is valid for
// that list. Unrecognized keywords yield command.Unknown rather than an
// error. Failures are *apperr.ParseError.
func (p *Interpreter) Interpret(line string, count int) (command.Command, error) {
	keyword, rest := splitKeyword(strings.TrimRight(line, "\r\n"))

	switch keyword {
	case "bye":
		return command.Exit(), nil
	case "list":
		return command.List(), nil
	case "done":
		i, err := parseIndex(rest, count)
		if err != nil {
			return command.Command{}, err
		}
		return command.Done(i), nil
	case "delete":
		i, err := parseIndex(rest, count)
		if err != nil {
			return command.Command{}, err
		}
		return command.Delete(i), nil
	case "todo":
		desc := strings.TrimSpace(rest)
		if desc == "" {
			return command.Command{}, apperr.NewParseError(apperr.ErrEmptyDescription,
				"The description of a todo cannot be empty.")
		}
		return command.AddTodo(desc), nil
	case "deadline":
		desc, when, err := p.parseTimed("deadline", rest, bySeparator)
		if err != nil {
			return command.Command{}, err
		}
		return command.AddDeadline(desc, when), nil
	case "event":
		desc, when, err := p.parseTimed("event", rest, atSeparator)
		if err != nil {
			return command.Command{}, err
		}
		return command.AddEvent(desc, when), nil
	case "find":
		return command.Find(rest), nil
	}
	return command.Unknown(keyword), nil
}

// splitKeyword returns the first whitespace-delimited token of line and
// everything after the single whitespace character that ends it.
func splitKeyword(line string) (keyword, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i+size:]
}

// parseIndex reads the first token of args as a 1-based index into a list
// of count tasks.
func parseIndex(args string, count int) (int, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, apperr.NewParseError(apperr.ErrMissingIndex, "Please give an index number.")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, apperr.NewParseError(apperr.ErrInvalidIndex,
			fmt.Sprintf("%q is not an index number.", fields[0]))
	}
	if n <= 0 {
		return 0, apperr.NewParseError(apperr.ErrInvalidIndex, "Please give an index number > 0.")
	}
	if n > count {
		if count == 0 {
			return 0, apperr.NewParseError(apperr.ErrInvalidIndex, "There are no tasks in the list.")
		}
		return 0, apperr.NewParseError(apperr.ErrInvalidIndex,
			fmt.Sprintf("Maximum index number is %d.", count))
	}
	return n, nil
}

// parseTimed splits "<desc> <sep> <when>" around the sep token and parses
// the time expression. sep must appear exactly once as a whole token.
func (p *Interpreter) parseTimed(name, args, sep string) (string, time.Time, error) {
	fields := strings.Fields(args)
	at, seen := -1, 0
	for i, f := range fields {
		if f == sep {
			at = i
			seen++
		}
	}
	if seen != 1 {
		return "", time.Time{}, apperr.NewParseError(apperr.ErrInvalidFormat,
			fmt.Sprintf("Usage: %s <description> %s <date time>", name, sep))
	}
	desc := strings.Join(fields[:at], " ")
	if desc == "" {
		return "", time.Time{}, apperr.NewParseError(apperr.ErrEmptyDescription,
			fmt.Sprintf("The description of a %s cannot be empty.", name))
	}
	expr := strings.Join(fields[at+1:], " ")
	when, ok := ParseDate(expr, p.loc)
	if !ok {
		return "", time.Time{}, apperr.NewParseError(apperr.ErrInvalidDate,
			fmt.Sprintf("Cannot read %q as a date. Accepted formats: %s (24-hour time).",
				expr, strings.Join(DateFormats, ", ")))
	}
	return desc, when, nil
}
