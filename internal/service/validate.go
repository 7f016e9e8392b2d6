package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"todo_backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTitleLen        = 200
	MaxCategoryNameLen = 100
)

// Rules applied to every todo and category write, whatever the caller.
var (
	titleRule        = "required,max=" + strconv.Itoa(MaxTitleLen)
	categoryNameRule = "required,max=" + strconv.Itoa(MaxCategoryNameLen)
	colorRule        = "len=7,hexcolor"
	priorityRule     = "oneof=" + strings.Join([]string{
		string(domain.PriorityHigh), string(domain.PriorityMedium), string(domain.PriorityLow),
	}, " ")
)

const colorMessage = "color must be a hex color like #3B82F6"

var validate = validator.New()

// check runs rule against value and reports the first failure for field.
func check(field string, value any, rule string) error {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalid(field, FieldMessage(field, verrs[0]))
	}
	return invalid(field, field+" is invalid")
}

// FieldMessage renders a validator failure as a client-facing message.
func FieldMessage(field string, fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexcolor":
		return colorMessage
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func normalizeTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	return s, check("title", s, titleRule)
}

func normalizeCategoryName(s string) (string, error) {
	s = strings.TrimSpace(s)
	return s, check("name", s, categoryNameRule)
}

func validatePriority(p domain.Priority) error {
	return check("priority", string(p), priorityRule)
}

func validateColor(c string) error {
	if check("color", c, colorRule) != nil {
		return invalid("color", colorMessage)
	}
	return nil
}

func notNull(field string, null bool) error {
	if null {
		return invalid(field, field+" must not be null")
	}
	return nil
}
