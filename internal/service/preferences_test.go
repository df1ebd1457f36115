package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		cleaned, err := validatePreferences([]string{" vegan ", "nut-free"})
		require.NoError(t, err)
		assert.Equal(t, []string{"vegan", "nut-free"}, cleaned)
	})

	t.Run("empty set is allowed", func(t *testing.T) {
		cleaned, err := validatePreferences([]string{})
		require.NoError(t, err)
		assert.Empty(t, cleaned)
	})

	t.Run("empty tag rejected", func(t *testing.T) {
		_, err := validatePreferences([]string{"vegan", "   "})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("duplicate tag rejected", func(t *testing.T) {
		_, err := validatePreferences([]string{"vegan", " vegan"})
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("twenty tags accepted", func(t *testing.T) {
		tags := make([]string, 20)
		for i := range tags {
			tags[i] = fmt.Sprintf("tag-%d", i)
		}
		cleaned, err := validatePreferences(tags)
		require.NoError(t, err)
		assert.Len(t, cleaned, 20)
	})

	t.Run("twenty-one tags rejected", func(t *testing.T) {
		tags := make([]string, 21)
		for i := range tags {
			tags[i] = fmt.Sprintf("tag-%d", i)
		}
		_, err := validatePreferences(tags)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
