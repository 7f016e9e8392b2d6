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

type CategoryRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db, now: now}
}

const categoryColumns = `id, name, color, created_at`

func (r *CategoryRepository) Get(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM categories WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("check category %d: %w", id, err)
	}
	return n > 0, nil
}

// List returns categories by id; limit <= 0 means no limit.
func (r *CategoryRepository) List(ctx context.Context, skip, limit int) ([]domain.Category, error) {
	if skip < 0 {
		skip = 0
	}
	lim := int64(limit)
	if limit <= 0 {
		lim = math.MaxInt64
	}

	res := []domain.Category{}
	err := r.db.SelectContext(ctx, &res,
		r.db.Rebind(`SELECT `+categoryColumns+` FROM categories ORDER BY id ASC LIMIT ? OFFSET ?`),
		lim, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for i := range res {
		res[i].CreatedAt = res[i].CreatedAt.UTC()
	}
	return res, nil
}

func (r *CategoryRepository) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	color := in.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO categories (name, color, created_at) VALUES (?, ?, ?) RETURNING id`),
		in.Name, color, r.now(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return r.Get(ctx, id)
}

// Update applies only the fields present in patch.
func (r *CategoryRepository) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(c)

	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE categories SET name = ?, color = ? WHERE id = ?`),
		c.Name, c.Color, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the category and detaches every todo that referenced it,
// in one transaction. It reports false when no category had that id.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete category %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE todos SET category_id = NULL, updated_at = ? WHERE category_id = ?`),
		r.now(), id,
	); err != nil {
		return false, fmt.Errorf("detach todos from category %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete category %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category %d: %w", id, err)
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete category %d: %w", id, err)
	}
	return true, nil
}
