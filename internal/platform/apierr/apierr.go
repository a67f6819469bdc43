package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error carries the HTTP status a failure should surface with.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatusCode lets transport code resolve the status without knowing this type.
func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func newMsg(status int, code, msg string) *Error {
	return New(status, code, errors.New(msg))
}

func Validation(msg string) *Error   { return newMsg(http.StatusUnprocessableEntity, "validation", msg) }
func NotFound(msg string) *Error     { return newMsg(http.StatusNotFound, "not_found", msg) }
func Conflict(msg string) *Error     { return newMsg(http.StatusConflict, "conflict", msg) }
func Unauthorized(msg string) *Error { return newMsg(http.StatusUnauthorized, "unauthorized", msg) }
func Forbidden(msg string) *Error    { return newMsg(http.StatusForbidden, "forbidden", msg) }
func BadRequest(msg string) *Error   { return newMsg(http.StatusBadRequest, "bad_request", msg) }

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal", err)
}

type statusCoder interface {
	HTTPStatusCode() int
}

// StatusOf resolves the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if s := sc.HTTPStatusCode(); s > 0 {
			return s
		}
	}
	return http.StatusInternalServerError
}

// FromStore classifies persistence failures. Unique violations become
// Conflict; everything else is returned unchanged.
func FromStore(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(conflictMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		return Conflict(conflictMsg)
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return Conflict(conflictMsg)
	}
	return err
}
