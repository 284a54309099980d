package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/pickup/internal/domain/model"
)

// newValidator returns a validator that knows the notblank and position tags
// and reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		_, err := model.ParsePosition(fl.Field().String())
		return err == nil
	})
	return v
}

// describe turns validator output into one readable sentence per field.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "position":
		return fmt.Sprintf("unknown position %q", fe.Value())
	case "min":
		if fe.Kind() == reflect.Map {
			return "at least one position must be rated"
		}
		return fmt.Sprintf("%s must be between %d and %d", field, model.MinRating, model.MaxRating)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be between %d and %d", field, model.MinRating, model.MaxRating)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
