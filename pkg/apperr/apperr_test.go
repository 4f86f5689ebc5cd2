package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := NotFound("order %d not found", 42)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "order 42 not found", err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("failed to cancel order: %w", InvalidState("order is INVOICED"))

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestKindOf_Untyped(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, cause, "barcode %q already exists", "abc")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "duplicate key")
}
