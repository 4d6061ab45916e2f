package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o, err := LoadOptions()
		require.NoError(t, err)
		assert.Equal(t, Options{
			TurnTimeout:         45 * time.Second,
			DoubleTimeout:       12 * time.Second,
			Language:            "en",
			MaxAutomatedActions: 1024,
		}, o)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("BGRULES_TURN_TIMEOUT", "90s")
		t.Setenv("BGRULES_DOUBLE_TIMEOUT", "1m")
		t.Setenv("BGRULES_LANGUAGE", "de")
		t.Setenv("BGRULES_VERBOSE", "true")
		t.Setenv("BGRULES_MAX_AUTOMATED_ACTIONS", "10")

		o, err := LoadOptions()
		require.NoError(t, err)
		assert.Equal(t, Options{
			TurnTimeout:         90 * time.Second,
			DoubleTimeout:       time.Minute,
			Language:            "de",
			Verbose:             true,
			MaxAutomatedActions: 10,
		}, o)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("BGRULES_DOUBLE_TIMEOUT", "soon")
		_, err := LoadOptions()
		assert.ErrorContains(t, err, "parse env:")
	})
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, defaultTurnTimeout, o.TurnTimeout)
	assert.Equal(t, defaultDoubleTimeout, o.DoubleTimeout)
	assert.Equal(t, "en", o.Language)
	assert.Equal(t, defaultMaxAutomatedActions, o.MaxAutomatedActions)

	o = Options{TurnTimeout: time.Second, Language: "es"}.withDefaults()
	assert.Equal(t, time.Second, o.TurnTimeout)
	assert.Equal(t, "es", o.Language)
}
