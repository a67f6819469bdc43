package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
)

// Rule binds one validator tag on one field to the message reported when it fails.
type Rule[T any] struct {
	Field   string
	Value   func(T) any
	Tag     string
	Message string
	// Optional rules are skipped when Value yields a nil pointer or nil slice.
	Optional bool
}

// Schema is evaluated in declaration order; every failing rule contributes its message.
type Schema[T any] []Rule[T]

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("nowhitespace", noWhitespace)
		_ = validate.RegisterValidation("strongpassword", strongPassword)
	})
	return validate
}

// Messages returns the failing messages for in, in rule order.
func (s Schema[T]) Messages(in T) []string {
	v := engine()
	var out []string
	for _, r := range s {
		val := r.Value(in)
		if isNil(val) {
			if r.Optional {
				continue
			}
			val = ""
		}
		val = deref(val)
		if err := v.Var(val, r.Tag); err != nil {
			out = append(out, r.Message)
		}
	}
	return out
}

// Validate returns a 422 apierr joining every failing message with ",".
func (s Schema[T]) Validate(in T) error {
	msgs := s.Messages(in)
	if len(msgs) == 0 {
		return nil
	}
	return apierr.Validation(strings.Join(msgs, ","))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv.Interface()
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// strongPassword requires at least one upper case letter, one digit and one
// character that is neither a letter nor a digit.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	return upper && digit && special
}
