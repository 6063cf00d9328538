package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/models"
)

const (
	fieldSep = " | "
	// timeLayout is the persisted timestamp format. Minute precision
	// matches what the interpreter accepts.
	timeLayout = "2006-01-02T15:04"
)

// EncodeLine renders one task as a record, timestamp in loc:
//
//	T | 0 | read book
//	D | 1 | return book | 2019-12-02T18:00
func EncodeLine(t models.Task, loc *time.Location) string {
	done := "0"
	if t.Done {
		done = "1"
	}
	line := string(t.Kind) + fieldSep + done + fieldSep + t.Description
	if t.Kind.HasTime() {
		line += fieldSep + t.When.In(loc).Format(timeLayout)
	}
	return line
}

// DecodeLine parses a record produced by EncodeLine.
func DecodeLine(line string, loc *time.Location) (models.Task, error) {
	kind, rest, ok := strings.Cut(line, fieldSep)
	if !ok {
		return models.Task{}, fmt.Errorf("missing fields: %w", apperr.ErrCorruptRecord)
	}
	done, desc, ok := strings.Cut(rest, fieldSep)
	if !ok {
		return models.Task{}, fmt.Errorf("missing description: %w", apperr.ErrCorruptRecord)
	}

	t := models.Task{Kind: models.Kind(kind)}
	switch done {
	case "0":
	case "1":
		t.Done = true
	default:
		return models.Task{}, fmt.Errorf("done flag %q: %w", done, apperr.ErrCorruptRecord)
	}

	// The timestamp is always the last field, so descriptions may contain
	// the separator.
	if t.Kind.HasTime() {
		i := strings.LastIndex(desc, fieldSep)
		if i < 0 {
			return models.Task{}, fmt.Errorf("missing timestamp: %w", apperr.ErrCorruptRecord)
		}
		when, err := time.ParseInLocation(timeLayout, desc[i+len(fieldSep):], loc)
		if err != nil {
			return models.Task{}, fmt.Errorf("timestamp: %w: %w", apperr.ErrCorruptRecord, err)
		}
		desc, t.When = desc[:i], when
	}
	t.Description = desc

	if err := t.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", apperr.ErrCorruptRecord, err)
	}
	return t, nil
}

// Encode renders tasks one record per line, in order, with timestamps
// written in loc.
func Encode(tasks []models.Task, loc *time.Location) []byte {
	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(EncodeLine(t, loc))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Decode parses the records in data. Blank lines are skipped; the first
// malformed line fails the whole decode.
func Decode(data []byte, loc *time.Location) ([]models.Task, error) {
	var out []models.Task
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := DecodeLine(line, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
