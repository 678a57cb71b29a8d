package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	var v ValidationError
	assert.NoError(t, v.Err())

	v.Add("theme", "must be one of teal, blue, purple, green")
	v.Add("name", "is required")
	v.Add("name", "ignored")

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "invalid name: is required; theme: must be one of teal, blue, purple, green", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
}

func TestValidMoodValue(t *testing.T) {
	assert.False(t, ValidMoodValue(0))
	assert.True(t, ValidMoodValue(1))
	assert.True(t, ValidMoodValue(10))
	assert.False(t, ValidMoodValue(11))
}
