package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	content := `
tasks:
  - title: Taxes
    priority: high
    due: 2024-04-15T00:00:00Z
  - id: t2
    title: Groceries
    completed: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID == "" || got[0].Priority != PriorityHigh || got[0].DueDate == nil {
		t.Fatalf("unexpected first task %+v", got[0])
	}
	if got[1].ID != "t2" || !got[1].Completed || got[1].Priority != PriorityLow {
		t.Fatalf("unexpected second task %+v", got[1])
	}
}

func TestLoadInvalidPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte("tasks:\n  - title: x\n    priority: urgent\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s.Progress != 0 || s.Total != 0 {
		t.Fatalf("unexpected empty summary %+v", s)
	}
	s := Summarize([]Task{{Completed: true}, {}, {}, {Completed: true}})
	if s.Total != 4 || s.Completed != 2 || s.Progress != 0.5 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestPendingOrder(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 1, 0)
	got := Pending([]Task{
		{Title: "low"},
		{Title: "done", Completed: true, Priority: PriorityHigh},
		{Title: "high-late", Priority: PriorityHigh, DueDate: &late},
		{Title: "high-undated", Priority: PriorityHigh},
		{Title: "high-early", Priority: PriorityHigh, DueDate: &early},
		{Title: "medium", Priority: PriorityMedium},
	})
	want := []string{"high-early", "high-late", "high-undated", "medium", "low"}
	if len(got) != len(want) {
		t.Fatalf("expected %d pending, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: got %q want %q", i, got[i].Title, title)
		}
	}
}
