package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/starford/taskline/internal/apperr"
	"github.com/starford/taskline/internal/command"
	"github.com/starford/taskline/internal/models"
	"github.com/starford/taskline/internal/storage"
	"github.com/starford/taskline/internal/testutil"
)

func openTest(t *testing.T, store storage.Store) *Session {
	t.Helper()
	s, err := Open(store, WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func mustHandle(t *testing.T, s *Session, line string) command.Outcome {
	t.Helper()
	out, err := s.Handle(line)
	if err != nil {
		t.Fatalf("Handle(%q): %v", line, err)
	}
	return out
}

func TestScenario_TodoDeadlineList(t *testing.T) {
	s := openTest(t, testutil.TestFile(t))

	mustHandle(t, s, "todo read book")
	mustHandle(t, s, "deadline return book /by 2/12/2019 18:00")
	out := mustHandle(t, s, "list")

	if len(out.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(out.Entries))
	}
	first, second := out.Entries[0].Task, out.Entries[1].Task
	if first.Kind != models.KindTodo || first.Done || first.Description != "read book" {
		t.Errorf("first = %+v", first)
	}
	want := time.Date(2019, 12, 2, 18, 0, 0, 0, time.UTC)
	if second.Kind != models.KindDeadline || second.Done || !second.When.Equal(want) {
		t.Errorf("second = %+v", second)
	}
}

func TestScenario_DeleteShifts(t *testing.T) {
	s := openTest(t, testutil.TestFile(t))
	mustHandle(t, s, "todo first")
	mustHandle(t, s, "event second /at 1/1/2020 9:00")
	original, _ := s.Tasks().Get(1)

	mustHandle(t, s, "delete 1")
	out := mustHandle(t, s, "list")
	if len(out.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(out.Entries))
	}
	if out.Entries[0].Position != 1 || out.Entries[0].Task != original {
		t.Errorf("entry = %+v, want %+v at 1", out.Entries[0], original)
	}
}

func TestScenario_DeadlineWithoutBy(t *testing.T) {
	store := &testutil.MemStore{}
	s := openTest(t, store)
	mustHandle(t, s, "todo a")

	out, err := s.Handle("deadline buy milk")
	if !errors.Is(err, apperr.ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
	if out.Kind != command.KindNone || out.Err() != nil {
		t.Errorf("outcome after parse error = %+v", out)
	}
	if s.Tasks().Size() != 1 || store.Saves != 1 {
		t.Errorf("size = %d, saves = %d", s.Tasks().Size(), store.Saves)
	}
}

func TestTodoGrowsByOne(t *testing.T) {
	s := openTest(t, &testutil.MemStore{})
	for i, desc := range []string{"a", "b c", "  padded  "} {
		out := mustHandle(t, s, "todo "+desc)
		if s.Tasks().Size() != i+1 {
			t.Errorf("size = %d, want %d", s.Tasks().Size(), i+1)
		}
		if out.Task.Done {
			t.Error("new todo should be undone")
		}
	}
}

func TestDeleteRoundTrip(t *testing.T) {
	for n := 1; n <= 3; n++ {
		store := testutil.TestFile(t)
		s := openTest(t, store)
		mustHandle(t, s, "todo a")
		mustHandle(t, s, "deadline b /by 2/12/2019 18:00")
		mustHandle(t, s, "event c /at 3-Dec-2019 9:15")
		mustHandle(t, s, "done 2")

		if _, err := s.Handle(fmt.Sprintf("delete %d", n)); err != nil {
			t.Fatalf("delete %d: %v", n, err)
		}
		loaded, err := store.LoadAll()
		if err != nil {
			t.Fatalf("LoadAll: %v", err)
		}
		mem := s.Tasks().All()
		if len(loaded) != len(mem) {
			t.Fatalf("delete %d: loaded %d tasks, memory has %d", n, len(loaded), len(mem))
		}
		for i := range mem {
			if loaded[i].Kind != mem[i].Kind || loaded[i].Done != mem[i].Done ||
				loaded[i].Description != mem[i].Description || !loaded[i].When.Equal(mem[i].When) {
				t.Errorf("delete %d: task %d = %+v, want %+v", n, i, loaded[i], mem[i])
			}
		}
	}
}

func TestDoneTwiceEqualsOnce(t *testing.T) {
	s := openTest(t, &testutil.MemStore{})
	mustHandle(t, s, "todo a")
	mustHandle(t, s, "done 1")
	once := s.Tasks().All()
	mustHandle(t, s, "done 1")
	twice := s.Tasks().All()
	if once[0] != twice[0] {
		t.Errorf("state changed: %+v vs %+v", once[0], twice[0])
	}
}

func TestOutOfRangeIndexNoMutation(t *testing.T) {
	store := &testutil.MemStore{}
	s := openTest(t, store)
	mustHandle(t, s, "todo a")
	mustHandle(t, s, "todo b")
	saves := store.Saves

	for _, line := range []string{"done 0", "done 3", "delete -1", "delete 3", "done", "delete"} {
		_, err := s.Handle(line)
		if !errors.Is(err, apperr.ErrInvalidIndex) && !errors.Is(err, apperr.ErrMissingIndex) {
			t.Errorf("Handle(%q) err = %v", line, err)
		}
	}
	if s.Tasks().Size() != 2 || store.Saves != saves {
		t.Errorf("size = %d, saves = %d (was %d)", s.Tasks().Size(), store.Saves, saves)
	}
	for _, task := range s.Tasks().All() {
		if task.Done {
			t.Errorf("task %q marked done by a rejected command", task.Description)
		}
	}
}

func TestFindSubsequence(t *testing.T) {
	s := openTest(t, &testutil.MemStore{})
	if out := mustHandle(t, s, "find book"); len(out.Entries) != 0 {
		t.Errorf("empty list matched %+v", out.Entries)
	}
	mustHandle(t, s, "todo read book")
	mustHandle(t, s, "todo buy milk")
	mustHandle(t, s, "todo bookshelf")

	out := mustHandle(t, s, "find book")
	if len(out.Entries) != 2 || out.Entries[0].Position != 1 || out.Entries[1].Position != 3 {
		t.Errorf("entries = %+v", out.Entries)
	}
	if out := mustHandle(t, s, "find  book"); len(out.Entries) != 1 {
		t.Errorf("leading space should be significant: %+v", out.Entries)
	}
}

func TestSaveFailureIsReportedNotFatal(t *testing.T) {
	store := &testutil.MemStore{Err: errors.New("read-only file system")}
	s := openTest(t, store)

	out, err := s.Handle("todo a")
	if !errors.Is(err, apperr.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if out.Count != 1 || s.Tasks().Size() != 1 {
		t.Errorf("in-memory add lost: count = %d", out.Count)
	}

	store.Err = nil
	mustHandle(t, s, "todo b")
	if len(store.Tasks) != 2 {
		t.Errorf("next save should write both tasks, got %d", len(store.Tasks))
	}
}

func TestOpen_LoadsExisting(t *testing.T) {
	store := &testutil.MemStore{Tasks: []models.Task{models.NewTodo("kept")}}
	s := openTest(t, store)
	if s.Tasks().Size() != 1 {
		t.Fatalf("size = %d, want 1", s.Tasks().Size())
	}
	out := mustHandle(t, s, "done 1")
	if !out.Task.Done || out.Task.Description != "kept" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestFlush(t *testing.T) {
	store := &testutil.MemStore{}
	s := openTest(t, store)
	mustHandle(t, s, "list")
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if store.Saves != 1 {
		t.Errorf("saves = %d, want 1", store.Saves)
	}
	store.Err = errors.New("boom")
	if err := s.Flush(); !errors.Is(err, apperr.ErrIO) {
		t.Errorf("Flush err = %v, want ErrIO", err)
	}
}
