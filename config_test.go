package openair

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig([]byte(`
canvas_size: 500
projection: fixed
locale_stop_words: [radar, Approach]
workers: 3
`))
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.CanvasSize)
	assert.Equal(t, ProjectionFixed, cfg.Projection)
	assert.Equal(t, []string{"radar", "Approach"}, cfg.LocaleStopWords)
	assert.Equal(t, 3, cfg.Workers)

	// Settings that are not mentioned keep their defaults.
	assert.Equal(t, float64(DefaultMaxAltitudeFeet), cfg.MaxAltitudeFeet)
	assert.Equal(t, DefaultReferenceLat, cfg.Reference.Lat)
	assert.Equal(t, DefaultReferenceLon, cfg.Reference.Lon)

	assert.Equal(t, "", NewParser(cfg).locale("APPROACH RADAR"))
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg, err := DecodeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Unknown field", "colour: red"},
		{"Bad projection", "projection: mercator"},
		{"Zero canvas", "canvas_size: 0"},
		{"Negative maximum", "max_altitude_feet: -1"},
		{"Negative workers", "workers: -2"},
		{"Not YAML", "projection: [local"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := DecodeConfig([]byte("colour: red"))
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestLoadConfig(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "openair.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("max_altitude_feet: 45000\n"), 0o644))

	cfg, err := LoadConfig(fileName)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, cfg.MaxAltitudeFeet)

	a, _, err := NewParser(cfg).ParseAirspace("AC A\nAN HIGH\nAH UNL\nV X=51:00:00 N 000:00:00 E\nDC 1")
	require.NoError(t, err)
	assert.InDelta(t, 45000, a.Ceiling.FeetOr(0), 1e-6)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
