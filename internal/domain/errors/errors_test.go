package errors

import (
	"net/http"
	"testing"

	"numatu/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	detailed := ErrInvalidState.WithDetails("cannot depart from ANUNCIADA")

	assert.True(t, errors.Is(detailed, ErrInvalidState))
	assert.True(t, errors.Is(errors.Wrap(detailed, "depart"), ErrInvalidState))
	assert.False(t, errors.Is(detailed, ErrCollectionConflict))
	assert.Equal(t, "Ação não permitida no status atual da coleta: cannot depart from ANUNCIADA", detailed.Error())
}

func TestBaseError_AsAppError(t *testing.T) {
	err := ErrCollectionConflict.WrapMessage("claim")

	appErr, ok := errors.AsType[AppError](err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "COLLECTION_CONFLICT", appErr.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to update collection")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}
