package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessLevel_Ordering(t *testing.T) {
	assert.Less(t, LevelNone.Rank(), LevelView.Rank())
	assert.Less(t, LevelView.Rank(), LevelWrite.Rank())
	assert.Less(t, LevelWrite.Rank(), LevelFull.Rank())
}

func TestAccessLevel_Satisfies(t *testing.T) {
	assert.True(t, LevelFull.Satisfies(LevelWrite))
	assert.True(t, LevelWrite.Satisfies(LevelWrite))
	assert.True(t, LevelWrite.Satisfies(LevelView))
	assert.True(t, LevelView.Satisfies(LevelNone))

	assert.False(t, LevelView.Satisfies(LevelWrite))
	assert.False(t, LevelNone.Satisfies(LevelView))
}

func TestAccessLevel_Satisfies_Unknown(t *testing.T) {
	// An unknown level never satisfies anything, not even NONE
	unknown := AccessLevel("GODMODE")
	assert.False(t, unknown.Satisfies(LevelNone))
	assert.False(t, unknown.Satisfies(LevelFull))
}

func TestAccessLevel_Max(t *testing.T) {
	assert.Equal(t, LevelFull, LevelView.Max(LevelFull))
	assert.Equal(t, LevelFull, LevelFull.Max(LevelView))
	assert.Equal(t, LevelWrite, LevelWrite.Max(LevelWrite))
}

func TestParseAccessLevel(t *testing.T) {
	level, err := ParseAccessLevel("WRITE")
	assert.NoError(t, err)
	assert.Equal(t, LevelWrite, level)

	_, err = ParseAccessLevel("write")
	assert.Error(t, err)

	_, err = ParseAccessLevel("")
	assert.Error(t, err)
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "deny", DecisionDeny.String())
	assert.True(t, DecisionAllow.Allowed())
	assert.False(t, DecisionDeny.Allowed())
}

func TestRedactedProfileView(t *testing.T) {
	view := RedactedProfileView()
	assert.True(t, view.Redacted)
	assert.Equal(t, RedactedProfileReason, view.Reason)
	// Redacted views must not leak any profile fields
	assert.Nil(t, view.Profile)
}
