package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 22000.0, cfg.OutlierPriceThreshold)
	assert.Equal(t, 0.85, cfg.TrainRatio)
	assert.Equal(t, 10, cfg.CVFolds)
	assert.Equal(t, 1, cfg.KMin)
	assert.Equal(t, 20, cfg.KMax)
	assert.Equal(t, "price", cfg.TargetColumn)
	assert.Contains(t, cfg.TrainingColumns, cfg.TargetColumn)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"train ratio zero", func(c *Config) { c.TrainRatio = 0 }},
		{"train ratio one", func(c *Config) { c.TrainRatio = 1 }},
		{"single fold", func(c *Config) { c.CVFolds = 1 }},
		{"k min zero", func(c *Config) { c.KMin = 0 }},
		{"k max below k min", func(c *Config) { c.KMin = 5; c.KMax = 3 }},
		{"threshold not positive", func(c *Config) { c.OutlierPriceThreshold = 0 }},
		{"empty target", func(c *Config) { c.TargetColumn = "" }},
		{"too few columns", func(c *Config) { c.TrainingColumns = []string{"price"} }},
		{"target not trained", func(c *Config) { c.TrainingColumns = []string{"horsepower", "city_mpg"} }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoprice.yaml")
	doc := `outlier_price_threshold: 18000
k_max: 12
seed: 99
training_columns:
  - horsepower
  - curb_weight
  - price
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18000.0, cfg.OutlierPriceThreshold)
	assert.Equal(t, 12, cfg.KMax)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, []string{"horsepower", "curb_weight", "price"}, cfg.TrainingColumns)

	// Unmentioned keys keep their defaults.
	assert.Equal(t, 0.85, cfg.TrainRatio)
	assert.Equal(t, "?", cfg.Sentinel)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoprice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("train_ratio: 2.0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFileRejected(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFeatureColumns_ExcludesTargetKeepsOrder(t *testing.T) {
	cfg := Default()
	features := cfg.FeatureColumns()

	assert.Equal(t, []string{
		"wheel_base", "length", "curb_weight",
		"horsepower", "city_mpg", "highway_mpg",
	}, features)
	assert.NotContains(t, features, cfg.TargetColumn)
}
