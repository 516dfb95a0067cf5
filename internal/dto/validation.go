package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RequiredMessager: запрос сам формулирует сообщение про обязательные поля.
type RequiredMessager interface {
	RequiredMessage() string
}

// Setup настраивает биндинг gin: неизвестные поля JSON отклоняются,
// в ошибках валидации используются имена из json-тегов.
func Setup() {
	binding.EnableDecoderDisallowUnknownFields = true
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// notblank: строка из одних пробелов не проходит required-поля
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// BindError переводит ошибку ShouldBindJSON в ответ 400.
func BindError(req any, err error) ValidationErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("Invalid request body", nil)
	}

	fields := make([]FieldError, 0, len(verrs))
	missing := false
	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "notblank" {
			missing = true
		}
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
			Tag:     fe.Tag(),
		})
	}

	msg := "Validation failed"
	if rm, ok := req.(RequiredMessager); ok && missing {
		msg = rm.RequiredMessage()
	}
	return NewValidationError(msg, fields)
}

// fieldPath отрезает имя корневой структуры: "CreateBookingRequest.customer.email" -> "customer.email".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must match " + fe.Param()
	default:
		return "is invalid"
	}
}
