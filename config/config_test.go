package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	yml := `
dataset: data/full.json
images:
  source: photos
  thumb_width: 240
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	s, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "data/full.json", s.Dataset)
	assert.Equal(t, "photos", s.Images.Source)
	assert.Equal(t, 240, s.Images.ThumbWidth)
	// untouched keys keep their defaults
	assert.Equal(t, DetailWidth, s.Images.DetailWidth)
	assert.Equal(t, float32(DetailQuality), s.Images.DetailQuality)
	assert.Equal(t, LeanFile, s.Lean)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"zero width", "images:\n  detail_width: 0\n"},
		{"quality too high", "images:\n  thumb_quality: 101\n"},
		{"not yaml", "images: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0644))
			_, err := Load(path, true)
			assert.Error(t, err)
		})
	}
}
