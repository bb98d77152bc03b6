package dto

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	"payment-portal/pkg/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var recipientIDRe = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recipient_id", validateRecipientID)
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// validateRecipientID accepts directory ids, ignoring surrounding whitespace.
func validateRecipientID(fl validator.FieldLevel) bool {
	return recipientIDRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// BindError converts a gin binding failure into a VAL_000 error whose message
// names the first offending field.
func BindError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Validation("Invalid request body")
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperror.Validation(fmt.Sprintf("%s is required", field))
	case "email":
		return apperror.Validation(fmt.Sprintf("%s must be a valid email address", field))
	case "max":
		return apperror.Validation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "recipient_id":
		return apperror.Validation(fmt.Sprintf("%s is not a valid recipient id", field))
	default:
		return apperror.Validation(fmt.Sprintf("%s is invalid", field))
	}
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if elem := f.Elem(); elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
