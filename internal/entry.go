// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/render"
	"github.com/starford/taskline/internal/session"
	"github.com/starford/taskline/internal/storage"
)

// Run loads the task list and processes command lines until "bye", end of
// input or a shutdown signal, then saves the list one last time.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		in:  os.Stdin,
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Logs go to stderr; stdout belongs to the conversation.
	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("path", cfg.Storage.Path),
		slog.Bool("watch", cfg.Storage.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path, time.Local)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer store.Close()

	sess, err := session.Open(store, session.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Tasks loaded", slog.Int("count", sess.Tasks().Size()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	lines, readErr := readLines(gCtx, app.in)

	// Command loop. The only goroutine that touches the task list.
	g.Go(func() error {
		defer cancel()
		fmt.Fprintln(app.out, render.Greeting)
		err := loop(gCtx, sess, lines, readErr, app.out)
		if flushErr := sess.Flush(); flushErr != nil {
			logger.Error("final save failed", slog.String("error", flushErr.Error()))
			return errors.Join(err, flushErr)
		}
		return err
	})

	if f, ok := store.(*storage.File); ok && cfg.Storage.Watch {
		g.Go(func() error {
			if err := storage.Watch(gCtx, f, logger, nil); err != nil {
				logger.Warn("watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Session ended", slog.Int("count", sess.Tasks().Size()))
	return nil
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// loop handles lines until the exit command, end of input or ctx is done.
// A read failure ends the loop with an error.
func loop(ctx context.Context, sess *session.Session, lines <-chan string, readErr <-chan error, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					fmt.Fprintln(out, render.Error(err))
					return fmt.Errorf("read input: %w", err)
				default:
					return nil
				}
			}
			o, err := sess.Handle(line)
			switch {
			case err == nil:
				fmt.Fprintln(out, render.Outcome(o))
			case errors.Is(err, apperr.ErrIO):
				fmt.Fprintln(out, render.Outcome(o))
				fmt.Fprintln(out, render.Error(err))
			default:
				fmt.Fprintln(out, render.Error(err))
			}
			if o.Exit() {
				return nil
			}
		}
	}
}

// readLines feeds lines from r into the returned channel, closing it at
// end of input. A scan error is sent on the error channel before the line
// channel closes. It stops early once ctx is done; a read blocked on a
// terminal is left behind and ends with the process.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			errc <- err
		}
	}()
	return lines, errc
}
