package service

import (
	"context"

	"todo_backend/internal/domain"
	"todo_backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type TodoService struct {
	repo       *repository.TodoRepository
	categories *CategoryService
	events     EventPublisher
}

// NewTodoService creates a todo service; events may be nil.
func NewTodoService(db *sqlx.DB, events EventPublisher) *TodoService {
	return &TodoService{
		repo:       repository.NewTodoRepository(db),
		categories: NewCategoryService(db, nil),
		events:     events,
	}
}

// List returns one page of todos matching filter. page is 1-based.
func (s *TodoService) List(ctx context.Context, filter domain.TodoFilter, page, limit int) (domain.Page[domain.Todo], error) {
	if filter.Priority != nil {
		if err := validatePriority(*filter.Priority); err != nil {
			return domain.Page[domain.Todo]{}, err
		}
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return domain.Page[domain.Todo]{}, err
	}
	items, err := s.repo.List(ctx, filter, domain.Skip(page, limit), limit)
	if err != nil {
		return domain.Page[domain.Todo]{}, err
	}
	return domain.NewPage(items, page, limit, total), nil
}

func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.repo.Get(ctx, id)
}

func (s *TodoService) Create(ctx context.Context, in domain.TodoInput) (*domain.Todo, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	in.Title = title
	if in.Priority == "" {
		in.Priority = domain.DefaultPriority
	}
	if err := validatePriority(in.Priority); err != nil {
		return nil, err
	}
	if err := s.categories.checkExists(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	publish(s.events, domain.EventTodoCreated, t.ID, t)
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := s.validatePatch(ctx, &patch); err != nil {
		return nil, err
	}

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	publish(s.events, domain.EventTodoUpdated, t.ID, t)
	return t, nil
}

func (s *TodoService) validatePatch(ctx context.Context, p *domain.TodoPatch) error {
	if p.Title.Set {
		if err := notNull("title", p.Title.Null); err != nil {
			return err
		}
		title, err := normalizeTitle(p.Title.Value)
		if err != nil {
			return err
		}
		p.Title.Value = title
	}
	if err := notNull("completed", p.Completed.Set && p.Completed.Null); err != nil {
		return err
	}
	if p.Priority.Set {
		if err := notNull("priority", p.Priority.Null); err != nil {
			return err
		}
		if err := validatePriority(p.Priority.Value); err != nil {
			return err
		}
	}
	return s.categories.checkExists(ctx, p.CategoryID.Ptr())
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	publish(s.events, domain.EventTodoDeleted, id, nil)
	return nil
}

// Toggle flips the completion flag.
func (s *TodoService) Toggle(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := s.repo.ToggleCompletion(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.events, domain.EventTodoToggled, t.ID, t)
	return t, nil
}
