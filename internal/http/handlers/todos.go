package handlers

import (
	"net/http"

	"todo_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

var (
	todoNotFoundDetail  = gin.H{"detail": "Todo not found"}
	todoNotFoundMessage = gin.H{"message": "Todo not found"}
)

type listTodosQuery struct {
	Page       int              `form:"page,default=1" binding:"min=1"`
	Limit      int              `form:"limit,default=10" binding:"min=1,max=50"`
	Search     string           `form:"search"`
	Completed  *bool            `form:"completed"`
	CategoryID *int64           `form:"category_id"`
	Priority   *domain.Priority `form:"priority"`
}

// ListTodos returns one page of todos in the {data, pagination} envelope.
func (h *Handler) ListTodos(c *gin.Context) {
	var q listTodosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	filter := domain.TodoFilter{
		Search:     q.Search,
		Completed:  q.Completed,
		CategoryID: q.CategoryID,
		Priority:   q.Priority,
	}
	page, err := h.Todos.List(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		respondError(c, err, todoNotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var in domain.TodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.Todos.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, todoNotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) GetTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.Todos.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, todoNotFoundDetail)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTodo applies a partial update: absent keys are left unchanged and
// null clears description, due_date and category_id.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch domain.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	t, err := h.Todos.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, todoNotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, todoNotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

// ToggleTodo flips completed.
func (h *Handler) ToggleTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.Todos.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, todoNotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, t)
}
