package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("Question not found")))
	assert.Equal(t, http.StatusConflict, StatusOf(fmt.Errorf("wrap: %w", Conflict("Exist relation"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(&Error{}))
}

func TestFromStore(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"gorm duplicated", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"pg unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: user.email"), http.StatusConflict},
		{"other", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromStore(tc.err, "Exist relation")
			assert.Equal(t, tc.want, StatusOf(got))
		})
	}
	assert.NoError(t, FromStore(nil, "x"))
}
