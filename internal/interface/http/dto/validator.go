package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/biblioteca/internal/domain/book"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// MinYear 允许的最早出版年份
const MinYear = 1000

var registerOnce sync.Once

// RegisterValidators 在gin的validator上注册自定义tag，并让错误里的字段名使用json名
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not validator/v10")
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		for tag, fn := range map[string]validator.Func{
			"notblank": notBlank,
			"anio":     validYear,
			"estado":   validStatus,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validYear(fl validator.FieldLevel) bool {
	y := fl.Field().Int()
	return y >= MinYear && y <= int64(time.Now().Year()+1)
}

func validStatus(fl validator.FieldLevel) bool {
	return book.Status(fl.Field().String()).Valid()
}

// BindError 把绑定/校验错误转成带字段明细的 400
func BindError(err error) *apperrors.AppError {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		syntax  *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperrors.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return apperrors.ErrInvalidParams.WithDetails(details...)

	case errors.As(err, &typeErr):
		// 顶层不是对象（数组、字符串等）时Field为空
		if typeErr.Field == "" {
			return apperrors.ErrBindError.WithDetails(apperrors.FieldError{
				Field:   "body",
				Message: "El cuerpo debe ser un objeto JSON",
			})
		}
		return apperrors.ErrInvalidParams.WithDetails(apperrors.FieldError{
			Field:   typeErr.Field,
			Message: typeMessage(typeErr.Field, typeErr.Type),
		})

	case errors.Is(err, io.EOF):
		return apperrors.ErrBindError.WithDetails(apperrors.FieldError{
			Field:   "body",
			Message: "El cuerpo de la solicitud está vacío",
		})

	case errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.ErrBindError.WithDetails(apperrors.FieldError{
			Field:   "body",
			Message: "JSON incompleto",
		})

	case errors.As(err, &syntax):
		return apperrors.ErrBindError.WithDetails(apperrors.FieldError{
			Field:   "body",
			Message: fmt.Sprintf("JSON mal formado en la posición %d", syntax.Offset),
		})

	default:
		return apperrors.ErrBindError.WithDetails(apperrors.FieldError{Field: "body", Message: "Cuerpo de la solicitud inválido"})
	}
}

var fieldLabels = map[string]string{
	"titulo":     "El título",
	"autor":      "El autor",
	"genero":     "El género",
	"anio":       "El año",
	"isbn":       "El ISBN",
	"estado":     "El estado",
	"imagen_url": "La URL de la imagen",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return "El campo " + field
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return label(field) + " es obligatorio"
	case "min", "max":
		if field == "isbn" {
			return "El ISBN debe tener entre 10 y 20 caracteres"
		}
		if fe.Tag() == "max" {
			return fmt.Sprintf("%s no puede superar %s caracteres", label(field), fe.Param())
		}
		return fmt.Sprintf("%s debe tener al menos %s caracteres", label(field), fe.Param())
	case "anio":
		return fmt.Sprintf("El año debe estar entre %d y %d", MinYear, time.Now().Year()+1)
	case "estado":
		return "El estado debe ser: Disponible, Prestado o En reparación"
	case "url":
		return "La URL de la imagen debe ser válida"
	default:
		return fmt.Sprintf("%s no es válido (%s)", label(field), fe.Tag())
	}
}

func typeMessage(field string, t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return label(field) + " debe ser un número entero"
	case reflect.String:
		return label(field) + " debe ser texto"
	default:
		return fmt.Sprintf("%s debe ser de tipo %s", label(field), t.Kind())
	}
}
