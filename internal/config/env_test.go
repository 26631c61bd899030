package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestEnvName(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	assert.Equal(t, "UNITLENS_PRECISION", l.EnvName(KeyPrecision))
	assert.Equal(t, "UNITLENS_USE_DESCRIPTIVE_NAMES", l.EnvName(KeyUseDescriptiveNames))
	assert.Equal(t, "UNITLENS_LIVE_PREVIEW_IN_EDIT_MODE", l.EnvName(KeyLivePreviewInEditMode))
}

func TestEnvApply(t *testing.T) {
	l := NewEnvLoaderWithLookup(DefaultEnvPrefix, mapLookup(map[string]string{
		"UNITLENS_PRECISION":           "4",
		"UNITLENS_SHOW_ORIGINAL_UNITS": "on",
		"UNITLENS_UNITS_SCRIPT":        "",
		"OTHER_PRECISION":              "9",
	}))

	base := DefaultSettings()
	base.UnitsScript = "x.lua"
	s, err := l.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Precision)
	assert.True(t, s.ShowOriginalUnits)
	assert.Empty(t, s.UnitsScript, "empty values count as set")
	assert.True(t, s.IsAutosuggestEnabled)
}

func TestEnvApplyError(t *testing.T) {
	l := NewEnvLoaderWithLookup("T_", mapLookup(map[string]string{"T_PRECISION": "many"}))
	_, err := l.Apply(DefaultSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "T_PRECISION")
}
