package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"todo_backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TodoRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db, now: now}
}

const todoSelect = `SELECT t.id, t.title, t.description, t.completed, t.priority, t.due_date,
	t.category_id, t.created_at, t.updated_at,
	c.id AS cat_id, c.name AS cat_name, c.color AS cat_color, c.created_at AS cat_created_at
FROM todos t
LEFT JOIN categories c ON c.id = t.category_id`

// todoRow is a todo joined with its (possibly missing) category.
type todoRow struct {
	domain.Todo
	CatID        sql.NullInt64  `db:"cat_id"`
	CatName      sql.NullString `db:"cat_name"`
	CatColor     sql.NullString `db:"cat_color"`
	CatCreatedAt sql.NullTime   `db:"cat_created_at"`
}

func (r todoRow) todo() domain.Todo {
	t := r.Todo
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		t.DueDate = &d
	}
	if r.CatID.Valid {
		t.Category = &domain.Category{
			ID:        r.CatID.Int64,
			Name:      r.CatName.String,
			Color:     r.CatColor.String,
			CreatedAt: r.CatCreatedAt.Time.UTC(),
		}
	}
	return t
}

type querier interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	Rebind(query string) string
}

func getTodo(ctx context.Context, q querier, id int64) (*domain.Todo, error) {
	var row todoRow
	err := q.GetContext(ctx, &row, q.Rebind(todoSelect+` WHERE t.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	t := row.todo()
	return &t, nil
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	return getTodo(ctx, r.db, id)
}

// List returns todos matching filter ordered by id; limit <= 0 means no limit.
func (r *TodoRepository) List(ctx context.Context, filter domain.TodoFilter, skip, limit int) ([]domain.Todo, error) {
	if skip < 0 {
		skip = 0
	}
	lim := int64(limit)
	if limit <= 0 {
		lim = math.MaxInt64
	}

	where, args := todoFilter(filter).where(r.db.DriverName())
	query := r.db.Rebind(todoSelect + where + ` ORDER BY t.id ASC LIMIT ? OFFSET ?`)
	args = append(args, lim, skip)

	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	res := make([]domain.Todo, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.todo())
	}
	return res, nil
}

func (r *TodoRepository) Count(ctx context.Context, filter domain.TodoFilter) (int64, error) {
	where, args := todoFilter(filter).where(r.db.DriverName())

	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM todos t`+where), args...); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) Create(ctx context.Context, in domain.TodoInput) (*domain.Todo, error) {
	priority := in.Priority
	if priority == "" {
		priority = domain.DefaultPriority
	}
	ts := r.now()

	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO todos (title, description, completed, priority, due_date, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		in.Title, in.Description, in.Completed, string(priority), utcPtr(in.DueDate), in.CategoryID, ts, ts,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return r.Get(ctx, id)
}

// Update applies only the fields present in patch. updated_at is always
// refreshed, even for an empty patch.
func (r *TodoRepository) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	t, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)

	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE todos SET title = ?, description = ?, completed = ?, priority = ?,
		due_date = ?, category_id = ?, updated_at = ? WHERE id = ?`),
		t.Title, t.Description, t.Completed, string(t.Priority),
		utcPtr(t.DueDate), t.CategoryID, nextUpdate(r.now, t.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM todos WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, err)
	}
	return n > 0, nil
}

// ToggleCompletion flips completed and refreshes updated_at.
func (r *TodoRepository) ToggleCompletion(ctx context.Context, id int64) (*domain.Todo, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin toggle todo %d: %w", id, err)
	}
	defer tx.Rollback()

	t, err := getTodo(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?`),
		!t.Completed, nextUpdate(r.now, t.UpdatedAt), id,
	); err != nil {
		return nil, fmt.Errorf("toggle todo %d: %w", id, err)
	}

	t, err = getTodo(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit toggle todo %d: %w", id, err)
	}
	return t, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
