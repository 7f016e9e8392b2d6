package domain

import "time"

type Todo struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	Priority    Priority   `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	CategoryID  *int64     `db:"category_id" json:"category_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// Category is resolved from CategoryID on read and never written.
	Category *Category `db:"-" json:"category"`
}

// TodoInput holds the fields accepted when creating a todo.
type TodoInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *int64     `json:"category_id"`
}

// TodoPatch distinguishes absent fields from fields explicitly set to null.
// Description, DueDate and CategoryID are nullable; null clears them.
type TodoPatch struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Completed   Optional[bool]      `json:"completed"`
	Priority    Optional[Priority]  `json:"priority"`
	DueDate     Optional[time.Time] `json:"due_date"`
	CategoryID  Optional[int64]     `json:"category_id"`
}

// Apply merges the present fields into t. Callers validate nulls on
// non-nullable fields beforehand.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.Completed.Set {
		t.Completed = p.Completed.Value
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Value
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Ptr()
	}
	if p.CategoryID.Set {
		t.CategoryID = p.CategoryID.Ptr()
	}
}

// TodoFilter narrows a todo listing. Zero values mean "no constraint".
type TodoFilter struct {
	Search     string
	Completed  *bool
	CategoryID *int64
	Priority   *Priority
}
