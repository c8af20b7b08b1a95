package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorWrapping(t *testing.T) {
	err := NotFoundf("booking_id=%d was not found", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "not found: booking_id=7 was not found", err.Error())

	err = Conflictf("booking is %s", "cancelled")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "conflict: booking is cancelled", err.Error())
}
