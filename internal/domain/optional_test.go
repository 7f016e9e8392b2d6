package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTodoPatchDecode(t *testing.T) {
	var p TodoPatch
	body := `{"title":"New","description":null,"due_date":"2025-03-01T10:00:00Z"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !p.Title.Set || p.Title.Null || p.Title.Value != "New" {
		t.Fatalf("title = %+v", p.Title)
	}
	if !p.Description.Set || !p.Description.Null {
		t.Fatalf("description should be present and null, got %+v", p.Description)
	}
	if p.Completed.Set || p.Priority.Set || p.CategoryID.Set {
		t.Fatalf("absent fields marked as set: %+v", p)
	}
	want := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if !p.DueDate.Set || !p.DueDate.Value.Equal(want) {
		t.Fatalf("due_date = %+v", p.DueDate)
	}
}

func TestTodoPatchApply(t *testing.T) {
	desc := "keep"
	cat := int64(4)
	todo := Todo{
		Title:       "Old",
		Description: &desc,
		Priority:    PriorityLow,
		CategoryID:  &cat,
	}

	TodoPatch{
		Title:      Some("New"),
		CategoryID: Null[int64](),
	}.Apply(&todo)

	if todo.Title != "New" {
		t.Fatalf("title = %q", todo.Title)
	}
	if todo.CategoryID != nil {
		t.Fatalf("category_id should be cleared, got %v", *todo.CategoryID)
	}
	if todo.Description == nil || *todo.Description != "keep" {
		t.Fatalf("description changed: %v", todo.Description)
	}
	if todo.Priority != PriorityLow {
		t.Fatalf("priority changed: %q", todo.Priority)
	}
}

func TestOptionalPtr(t *testing.T) {
	var absent Optional[string]
	if absent.Ptr() != nil {
		t.Fatalf("absent Ptr should be nil")
	}
	if Null[string]().Ptr() != nil {
		t.Fatalf("null Ptr should be nil")
	}
	if p := Some("x").Ptr(); p == nil || *p != "x" {
		t.Fatalf("Some Ptr = %v", p)
	}
}

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"high", "medium", "low"} {
		if _, err := ParsePriority(s); err != nil {
			t.Fatalf("ParsePriority(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "HIGH", "urgent"} {
		if _, err := ParsePriority(s); err == nil {
			t.Fatalf("ParsePriority(%q) should fail", s)
		}
	}
}
