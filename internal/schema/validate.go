// Package schema validates inbound entity payloads before they reach storage.
//
// Validation happens in two passes. Every recognized JSON field is decoded on
// its own so that a wrong primitive type is reported per field instead of
// aborting the whole decode. The decoded struct is then checked against its
// `validate` tags (presence, enums) with go-playground/validator. All failures
// from both passes are collected into a single *ValidationError.
//
// Fields that are not part of the payload type are dropped.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/terra-clan/academy-api/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one offending field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Entity string
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("invalid %s data: %s", e.Entity, strings.Join(msgs, "; "))
}

// Message returns the user-facing summary, e.g. "Invalid user data"
func (e *ValidationError) Message() string {
	return "Invalid " + e.Entity + " data"
}

// ValidateCreate decodes body into a new T and checks that every required
// field is present and well typed.
func ValidateCreate[T any](body []byte) (*T, error) {
	return decode[T](body, false)
}

// ValidatePartialUpdate decodes body into a new T where every field is optional.
// At least one recognized field must be present.
func ValidatePartialUpdate[T any](body []byte) (*T, error) {
	return decode[T](body, true)
}

// getValidator returns the shared validator. Field names in errors are the
// JSON names so they line up with what the client sent.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f)
		})
	})
	return validate
}

func decode[T any](body []byte, partial bool) (*T, error) {
	out := new(T)
	rv := reflect.ValueOf(out).Elem()
	rt := rv.Type()
	verr := &ValidationError{Entity: entityName(rt)}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		verr.Fields = append(verr.Fields, FieldError{Message: "request body must be a JSON object"})
		return nil, verr
	}

	badType := make(map[string]bool)
	var present []string

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := jsonName(f)
		if name == "" {
			continue
		}
		val, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(val, rv.Field(i).Addr().Interface()); err != nil {
			badType[name] = true
			verr.Fields = append(verr.Fields, FieldError{
				Field:   name,
				Message: fmt.Sprintf("%s must be %s", name, describeType(f.Type)),
			})
			continue
		}
		present = append(present, f.Name)
	}

	if partial && len(present) == 0 && len(badType) == 0 {
		verr.Fields = append(verr.Fields, FieldError{Message: "at least one recognized field is required"})
		return nil, verr
	}

	var err error
	switch {
	case !partial:
		err = getValidator().Struct(out)
	case len(present) > 0:
		err = getValidator().StructPartial(out, present...)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if badType[fe.Field()] {
				continue
			}
			verr.Fields = append(verr.Fields, FieldError{
				Field:   fe.Field(),
				Message: translate(fe),
			})
		}
	} else if err != nil {
		verr.Fields = append(verr.Fields, FieldError{Message: err.Error()})
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

var timeType = reflect.TypeOf(time.Time{})

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "an RFC 3339 timestamp"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice:
		return "an array of " + strings.TrimPrefix(describeType(t.Elem()), "a ") + "s"
	default:
		return "a " + t.Kind().String()
	}
}

func entityName(t reflect.Type) string {
	switch t {
	case reflect.TypeOf((*models.UserInput)(nil)).Elem():
		return "user"
	case reflect.TypeOf((*models.LearningPathInput)(nil)).Elem():
		return "learning path"
	case reflect.TypeOf((*models.ModuleInput)(nil)).Elem():
		return "module"
	case reflect.TypeOf((*models.ProgressInput)(nil)).Elem():
		return "progress"
	case reflect.TypeOf((*models.ChallengeInput)(nil)).Elem():
		return "challenge"
	case reflect.TypeOf((*models.SubmissionInput)(nil)).Elem():
		return "submission"
	case reflect.TypeOf((*models.SubmissionReview)(nil)).Elem():
		return "review"
	case reflect.TypeOf((*models.PointsDelta)(nil)).Elem():
		return "points"
	default:
		return strings.ToLower(t.Name())
	}
}
