package service

import (
	"context"
	"errors"

	"todo_backend/internal/domain"
	"todo_backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// ErrCategoryNotFound is a validation failure: a todo referenced a
// category id that does not exist.
var ErrCategoryNotFound = &ValidationError{Field: "category_id", Message: "Category not found"}

type CategoryService struct {
	repo   *repository.CategoryRepository
	events EventPublisher
}

// NewCategoryService creates a category service; events may be nil.
func NewCategoryService(db *sqlx.DB, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:   repository.NewCategoryRepository(db),
		events: events,
	}
}

func (s *CategoryService) List(ctx context.Context, skip, limit int) ([]domain.Category, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	name, err := normalizeCategoryName(in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name
	if in.Color == "" {
		in.Color = domain.DefaultCategoryColor
	}
	if err := validateColor(in.Color); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	publish(s.events, domain.EventCategoryCreated, c.ID, c)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.Name.Set {
		if err := notNull("name", patch.Name.Null); err != nil {
			return nil, err
		}
		name, err := normalizeCategoryName(patch.Name.Value)
		if err != nil {
			return nil, err
		}
		patch.Name.Value = name
	}
	if patch.Color.Set {
		if err := notNull("color", patch.Color.Null); err != nil {
			return nil, err
		}
		if err := validateColor(patch.Color.Value); err != nil {
			return nil, err
		}
	}

	c, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	publish(s.events, domain.EventCategoryUpdated, c.ID, c)
	return c, nil
}

// Delete detaches referencing todos and removes the category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	publish(s.events, domain.EventCategoryDeleted, id, nil)
	return nil
}

// EnsureDefaults creates each category that does not exist yet, by name,
// and returns how many were created.
func (s *CategoryService) EnsureDefaults(ctx context.Context, defaults []domain.CategoryInput) (int, error) {
	created := 0
	for _, in := range defaults {
		_, err := s.repo.GetByName(ctx, in.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return created, err
		}
		if _, err := s.Create(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *CategoryService) checkExists(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := s.repo.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
