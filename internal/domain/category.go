package domain

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3B82F6"

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CategoryInput holds the fields accepted when creating a category.
type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryPatch is a partial update: only fields that were present in the
// request body are applied.
type CategoryPatch struct {
	Name  Optional[string] `json:"name"`
	Color Optional[string] `json:"color"`
}

// Apply merges the present fields into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name.Set {
		c.Name = p.Name.Value
	}
	if p.Color.Set {
		c.Color = p.Color.Value
	}
}

// DefaultCategories are created by the seed command.
var DefaultCategories = []CategoryInput{
	{Name: "Work", Color: "#3B82F6"},
	{Name: "Personal", Color: "#10B981"},
	{Name: "Shopping", Color: "#F59E0B"},
	{Name: "Health", Color: "#EF4444"},
}
