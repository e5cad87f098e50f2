package http

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so details match the request body.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("notblank", validateNotBlank)
	_ = validate.RegisterValidation("money", validateMoney)
}

func validatePhone(fl validator.FieldLevel) bool {
	return entity.PhonePattern.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateMoney accepts amounts with at most two decimal places.
func validateMoney(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	_, frac, _ := strings.Cut(strconv.FormatFloat(v, 'f', -1, 64), ".")
	return len(frac) <= 2
}

// ValidateStruct runs the struct's validate tags and returns one detail per
// failing field, or nil.
func ValidateStruct(s any) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []httpx.ErrorDetail{{Message: err.Error()}}
	}

	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, httpx.ErrorDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "money":
		return fmt.Sprintf("%s must have at most two decimal places", field)
	case "phone":
		return fmt.Sprintf("%s must look like +7(900)123-45-67", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
