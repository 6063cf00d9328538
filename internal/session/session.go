// Package session runs one input line through the interpreter and the
// command executor against the session's task list.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/command"
	"github.com/starford/taskline/internal/parser"
	"github.com/starford/taskline/internal/storage"
	"github.com/starford/taskline/internal/tasklist"
)

// Session owns the task list and its store for the life of the process.
type Session struct {
	tasks  *tasklist.TaskList
	store  storage.Store
	interp *parser.Interpreter
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithLocation sets the location dates are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		s.interp = parser.New(loc)
	}
}

// Open loads the stored tasks and returns a session over them.
func Open(store storage.Store, opts ...Option) (*Session, error) {
	loaded, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("session: load tasks: %w", err)
	}
	return New(tasklist.New(loaded...), store, opts...), nil
}

// New returns a session over an already loaded list.
func New(tasks *tasklist.TaskList, store storage.Store, opts ...Option) *Session {
	s := &Session{
		tasks:  tasks,
		store:  store,
		interp: parser.New(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns the session's list.
func (s *Session) Tasks() *tasklist.TaskList {
	return s.tasks
}

// Handle interprets and executes one line. A parse error leaves the list
// and store untouched and comes with a zero outcome of kind KindNone. An
// error wrapping apperr.ErrIO comes with a valid outcome: the change was
// applied in memory but not saved.
func (s *Session) Handle(line string) (command.Outcome, error) {
	cmd, err := s.interp.Interpret(line, s.tasks.Size())
	if err != nil {
		s.logger.Debug("rejected input", slog.String("error", err.Error()))
		return command.Outcome{}, err
	}

	out, err := command.Execute(cmd, s.tasks, s.store)
	if err != nil {
		if errors.Is(err, apperr.ErrIO) {
			s.logger.Warn("save failed; keeping in-memory list",
				slog.String("command", cmd.Kind.String()),
				slog.String("error", err.Error()))
		}
		return out, err
	}

	level := slog.LevelDebug
	if cmd.Kind.Mutates() {
		level = slog.LevelInfo
	}
	s.logger.Log(context.Background(), level, "command executed",
		slog.String("command", cmd.Kind.String()),
		slog.Int("count", out.Count))
	return out, nil
}

// Flush saves the whole list. It is called once more when the session ends.
func (s *Session) Flush() error {
	if err := s.store.SaveAll(s.tasks.All()); err != nil {
		return fmt.Errorf("%w: flush: %w", apperr.ErrIO, err)
	}
	return nil
}
