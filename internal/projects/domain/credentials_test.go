package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectID_Format(t *testing.T) {
	re := regexp.MustCompile(`^PRJ-[0-9A-F]{6}$`)

	for i := 0; i < 50; i++ {
		id, err := NewProjectID()
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestNewProjectID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewProjectID()
		require.NoError(t, err)
		seen[id] = true
	}
	// 100 draws from a 16M space; a collision here points at broken entropy.
	assert.Greater(t, len(seen), 90)
}

func TestNewAccessPassword_Distinct(t *testing.T) {
	a, err := NewAccessPassword()
	require.NoError(t, err)
	b, err := NewAccessPassword()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusInProgress, StatusReview, StatusCompleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("Cancelled").Valid())
	assert.False(t, Status("").Valid())
}
