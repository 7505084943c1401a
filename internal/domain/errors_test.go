package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsError(t *testing.T) {
	t.Run("passes a domain error through", func(t *testing.T) {
		err := ErrInvalidData("amount", "must be positive")
		assert.Same(t, err, AsError(err))
	})

	t.Run("finds a wrapped domain error", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", ErrDuplicate("email already registered"))
		assert.Equal(t, KindDuplicate, AsError(wrapped).Kind)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		de := AsError(cause)
		assert.Equal(t, KindInternal, de.Kind)
		assert.Equal(t, "internal error", de.Message)
		assert.ErrorIs(t, de, cause)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "INVALID_DATA: amount: must be positive",
		ErrInvalidData("amount", "must be positive").Error())
	assert.Equal(t, "NOT_FOUND: pix key not found: abc",
		ErrNotFound("pix key", "abc").Error())
}

func TestPixKeyTypeValid(t *testing.T) {
	for _, typ := range []PixKeyType{PixKeyCPF, PixKeyCNPJ, PixKeyEmail, PixKeyPhone, PixKeyRandom} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, PixKeyType("IBAN").Valid())
	assert.False(t, PixKeyType("").Valid())
}
