package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MalformedBodyMessage is reported when a body cannot be decoded.
const MalformedBodyMessage = "Malformed request body"

var registerOnce sync.Once

// RegisterValidators installs the custom tags and reports fields by their
// JSON (or query) names on gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// Message turns a binding error into a client-facing message.
func Message(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "notblank":
			return fmt.Sprintf("%s cannot be blank", fe.Field())
		case "max":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
			}
			return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "min":
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has an invalid value", typeErr.Field)
	}
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return MalformedBodyMessage
	}
	if strings.Contains(err.Error(), "invalid UUID") {
		return "Malformed request body: invalid UUID"
	}
	if strings.Contains(err.Error(), "strconv.") {
		return "page and size must be integers"
	}
	return MalformedBodyMessage
}
