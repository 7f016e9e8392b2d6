package repository

import (
	"strings"

	"todo_backend/internal/db"
	"todo_backend/internal/domain"
)

type todoFilter domain.TodoFilter

// where builds the WHERE clause shared by List and Count for driver.
// Placeholders are '?' and must go through Rebind before execution.
func (f todoFilter) where(driver string) (string, []any) {
	var conditions []string
	var args []any

	// whitespace-only terms are treated as no search
	if s := strings.TrimSpace(f.Search); s != "" {
		if driver == db.DriverPostgres {
			conditions = append(conditions, `t.title ILIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(s)+"%")
		} else {
			conditions = append(conditions, db.FoldLower+`(t.title) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(strings.ToLower(s))+"%")
		}
	}
	if f.Completed != nil {
		conditions = append(conditions, "t.completed = ?")
		args = append(args, *f.Completed)
	}
	if f.CategoryID != nil {
		conditions = append(conditions, "t.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Priority != nil {
		conditions = append(conditions, "t.priority = ?")
		args = append(args, string(*f.Priority))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
