package handlers

import (
	"net/http"

	"todo_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

var categoryNotFound = gin.H{"message": "Category not found"}

type listCategoriesQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	var q listCategoriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	cats, err := h.Categories.List(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		respondError(c, err, categoryNotFound)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.Categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, categoryNotFound)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var in domain.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, categoryNotFound)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch domain.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	cat, err := h.Categories.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, categoryNotFound)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory removes the category; todos that used it keep existing
// with category_id cleared.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, categoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
