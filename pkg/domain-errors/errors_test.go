package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, CodeUnavailable, "database unreachable")

	assert.EqualError(t, err, "database unreachable: pq: connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "no such attendee")

	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, HasCode(wrapped, CodeNotFound), "codes survive further wrapping")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(New(CodeConflict, "busy")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")), "uncoded errors default to internal")
}
