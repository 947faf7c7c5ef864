package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a json field name to the reason it was rejected.
// A non-empty map means the input did not produce a usable record.
type FieldErrors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a schema struct and enumerates every violated field.
// It returns nil when the record satisfies all constraints.
func Validate(record any) FieldErrors {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"body": err.Error()}
	}

	fields := make(FieldErrors, len(violations))
	for _, fe := range violations {
		fields[fe.Field()] = reason(fe)
	}
	return fields
}

// DecodeAndValidate decodes a JSON body into a schema struct and
// validates it. Decode failures are reported as field errors too, so
// callers surface one uniform validation shape.
func DecodeAndValidate(body io.Reader, record any) FieldErrors {
	dec := json.NewDecoder(body)
	if err := dec.Decode(record); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return FieldErrors{typeErr.Field: fmt.Sprintf("expected %s", typeErr.Type)}
		}
		return FieldErrors{"body": "invalid JSON body"}
	}
	return Validate(record)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "gte":
		return "ensure this value is greater than or equal to " + fe.Param()
	case "lte":
		return "ensure this value is less than or equal to " + fe.Param()
	default:
		return "invalid value"
	}
}
