package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSettings_Copy(t *testing.T) {
	orig := DefaultSettings()
	orig.APIKey = StrPtr("sk-secret")
	orig.Directions = StrPtr("Be terse.")

	cp := orig.Copy()
	assert.Equal(t, orig, cp)

	// Pointer fields must not alias.
	require.NotNil(t, cp.APIKey)
	require.NotNil(t, cp.Directions)
	*cp.APIKey = "sk-other"
	*cp.Directions = "Be verbose."
	assert.Equal(t, "sk-secret", *orig.APIKey)
	assert.Equal(t, "Be terse.", *orig.Directions)
}

func TestChatSettings_CopyNilPointers(t *testing.T) {
	s := ChatSettings{Model: "m", MaxTokens: 10}
	cp := s.Copy()
	assert.Nil(t, cp.APIKey)
	assert.Nil(t, cp.Directions)
	assert.Equal(t, s, cp)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DefaultModel, s.Model)
	assert.Equal(t, DefaultMaxTokens, s.MaxTokens)
	assert.Nil(t, s.APIKey)
	require.NotNil(t, s.Directions)
	assert.Equal(t, DefaultDirections, *s.Directions)
}
