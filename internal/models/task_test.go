package models

import (
	"testing"
	"time"
)

func TestTask_MarkDoneIdempotent(t *testing.T) {
	task := NewTodo("read book")
	if task.IsDone() {
		t.Fatal("new task should be undone")
	}
	task.MarkDone()
	task.MarkDone()
	if !task.IsDone() {
		t.Error("task should be done")
	}
}

func TestTask_String(t *testing.T) {
	by := time.Date(2019, 12, 2, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		task Task
		want string
	}{
		{NewTodo("read book"), "[T][ ] read book"},
		{Task{Kind: KindTodo, Description: "jog", Done: true}, "[T][X] jog"},
		{NewDeadline("return book", by), "[D][ ] return book (by: Dec 2 2019 18:00)"},
		{NewEvent("meeting", by), "[E][ ] meeting (at: Dec 2 2019 18:00)"},
	}
	for _, c := range cases {
		if got := c.task.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestTask_Validate(t *testing.T) {
	at := time.Date(2020, 1, 1, 9, 30, 0, 0, time.UTC)
	valid := []Task{
		NewTodo("a"),
		NewDeadline("b", at),
		NewEvent("c", at),
	}
	for _, task := range valid {
		if err := task.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", task, err)
		}
	}

	invalid := []Task{
		{Kind: KindTodo, Description: "   "},
		{Kind: "X", Description: "a"},
		{Kind: KindDeadline, Description: "no time"},
		{Kind: KindTodo, Description: "with time", When: at},
	}
	for _, task := range invalid {
		if err := task.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", task)
		}
	}
}
