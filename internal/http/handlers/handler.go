package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	DB         *sqlx.DB
	Todos      *service.TodoService
	Categories *service.CategoryService
}

// NewHandler wires the services over db. events may be nil.
func NewHandler(db *sqlx.DB, events service.EventPublisher) *Handler {
	return &Handler{
		DB:         db,
		Todos:      service.NewTodoService(db, events),
		Categories: service.NewCategoryService(db, events),
	}
}

// pathID parses :id and answers 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps service errors to responses. notFound is the body used
// for domain.ErrNotFound.
func respondError(c *gin.Context, err error, notFound gin.H) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": bindingMessage(err)})
}

// bindingMessage turns binding and decoding errors into a client-facing
// message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, service.FieldMessage(fe.Field(), fe))
		}
		return strings.Join(msgs, "; ")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Sprintf("invalid value %q", numErr.Num)
	}
	return "invalid request: " + err.Error()
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(tagName)
	}
}

// tagName reports query and body fields by their wire names.
func tagName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
