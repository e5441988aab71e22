package ginserver

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"staycal/internal/domain/shared/dateonly"
)

var bindingsOnce sync.Once

// registerBindings wires the calendar-date rule into gin's validator
// engine and makes validation failures report wire field names instead of
// Go struct fields.
func registerBindings() {
	bindingsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
			return dateonly.MatchesLayout(fl.Field().String())
		})
	})
}

// bindErrorMessage names the first violated constraint in caller terms.
// Anything that is not a field validation failure, such as malformed JSON,
// collapses to a generic message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fieldErr := verrs[0]
		switch fieldErr.Tag() {
		case "required":
			return fieldErr.Field() + " is required"
		case "calendardate":
			return fieldErr.Field() + " must be a date in YYYY-MM-DD form"
		}
		return fieldErr.Field() + " is invalid"
	}
	return "invalid request body"
}
