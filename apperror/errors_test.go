package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create room: %w", Business("room number %d already exists", 101))
	assert.True(t, IsBusiness(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.Equal(t, "create room: room number 101 already exists", wrapped.Error())

	nf := fmt.Errorf("get: %w", NotFound("room", "abc"))
	assert.True(t, IsNotFound(nf))
	assert.Equal(t, "get: room abc not found", nf.Error())
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := ValidationFields(map[string]string{"price": "must be positive", "beds": "required"})
	assert.Equal(t, "validation failed: beds: required; price: must be positive", err.Error())
}

func TestCollector(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Add("number", "must be positive")
	c.Add("number", "ignored")
	other := errors.New("boom")
	assert.Equal(t, other, c.Merge(other))
	assert.NoError(t, c.Merge(Validation("capacity", "must be positive")))

	err := c.Err()
	require.Error(t, err)
	var v *ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, map[string]string{
		"number":   "must be positive",
		"capacity": "must be positive",
	}, v.Fields)
}
