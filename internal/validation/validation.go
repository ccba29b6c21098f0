// Package validation checks request payloads against their `validate` struct
// tags and reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/pageza/larder/backend/internal/apperror"
)

// Quantities are stored as decimal(8,2).
const (
	quantityPlaces = 2
	quantityDigits = 8
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		if err := v.RegisterValidation("quantity", validQuantity); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// Struct validates v and returns an INVALID_REQUEST *apperror.Error listing
// all field errors, or nil.
func Struct(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(apperror.CodeInvalidRequest, "invalid request", err)
	}

	fields := apperror.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return apperror.Validation(fields)
}

// Require reports fields that must be present, such as on a full (PUT) update.
func Require(fields apperror.FieldErrors, name string, present bool) {
	if !present {
		fields.Add(name, "this field is required")
	}
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validQuantity(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	if !d.Equal(d.Round(quantityPlaces)) {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, quantityDigits-quantityPlaces))
}

// fieldPath drops the top-level struct name: "CreateRecipeRequest.steps[1].description"
// becomes "steps[1].description".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notblank":
		return "this field may not be blank"
	case "email":
		return "enter a valid email address"
	case "quantity":
		return fmt.Sprintf("ensure there are no more than %d digits in total and no more than %d decimal places", quantityDigits, quantityPlaces)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return "this field may not be blank"
			}
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	default:
		return "invalid value"
	}
}
