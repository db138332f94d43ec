package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, config.Render.PriorityLevels)
	assert.Equal(t, 500000, config.Render.ArtifactMaxSize)
	assert.Equal(t, 100, config.Render.SplitThreshold)
	assert.False(t, config.Render.SkeletonLoading)

	assert.Equal(t, "localhost", config.Preview.Host)
	assert.Equal(t, 8130, config.Preview.Port)
	assert.Equal(t, 32, config.Preview.CacheSize)

	assert.Equal(t, "artifacts", config.Output.Dir)
	assert.True(t, config.Output.Manifest)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("render.priority_levels", 3)
	viper.Set("render.skeleton_loading", true)
	viper.Set("render.artifact_max_size", 250000)
	viper.Set("preview.port", 9000)
	viper.Set("log.level", "debug")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, config.Render.PriorityLevels)
	assert.True(t, config.Render.SkeletonLoading)
	assert.Equal(t, 250000, config.Render.ArtifactMaxSize)
	assert.Equal(t, 9000, config.Preview.Port)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestLoadZeroSplitThresholdIsKept(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// An explicit zero means "always split", not "use the default".
	viper.Set("render.split_threshold", 0)

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, config.Render.SplitThreshold)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"negative max size", "render.artifact_max_size", -1},
		{"too many priority levels", "render.priority_levels", 50},
		{"bad port", "preview.port", 70000},
		{"bad log level", "log.level", "verbose"},
		{"bad log format", "log.format", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			viper.Set(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
