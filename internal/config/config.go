// Package config holds the tunable constants of the analysis pipeline.
//
// The outlier threshold and the training column list were chosen
// empirically by inspecting the exploratory plots; they are configuration,
// not derived truths, and can be overridden from a YAML file or CLI flags.
package config

import (
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/autoprice/pkg/errors"
)

// Config is the effective pipeline configuration.
type Config struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`

	// Sentinel is the missing-value marker in the source file.
	Sentinel string `mapstructure:"sentinel" yaml:"sentinel"`

	// OutlierPriceThreshold removes rows with target values at or above
	// it before the filtered training run.
	OutlierPriceThreshold float64 `mapstructure:"outlier_price_threshold" yaml:"outlier_price_threshold"`

	TrainRatio   float64 `mapstructure:"train_ratio" yaml:"train_ratio"`
	CVFolds      int     `mapstructure:"cv_folds" yaml:"cv_folds"`
	KMin         int     `mapstructure:"k_min" yaml:"k_min"`
	KMax         int     `mapstructure:"k_max" yaml:"k_max"`
	Seed         uint64  `mapstructure:"seed" yaml:"seed"`
	StratifyBins int     `mapstructure:"stratify_bins" yaml:"stratify_bins"`

	// TargetColumn is the predicted column; TrainingColumns is the exact
	// ordered feature list plus the target, used identically for training
	// and prediction.
	TargetColumn    string   `mapstructure:"target_column" yaml:"target_column"`
	TrainingColumns []string `mapstructure:"training_columns" yaml:"training_columns"`
}

// Default returns the configuration matching the original analysis.
func Default() *Config {
	return &Config{
		OutputDir:             "report",
		LogLevel:              "info",
		Sentinel:              "?",
		OutlierPriceThreshold: 22000,
		TrainRatio:            0.85,
		CVFolds:               10,
		KMin:                  1,
		KMax:                  20,
		Seed:                  1,
		StratifyBins:          5,
		TargetColumn:          "price",
		TrainingColumns: []string{
			"wheel_base", "length", "curb_weight",
			"horsepower", "city_mpg", "highway_mpg",
			"price",
		},
	}
}

// Load reads the configuration from an optional YAML file layered over
// the defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("sentinel", def.Sentinel)
	v.SetDefault("outlier_price_threshold", def.OutlierPriceThreshold)
	v.SetDefault("train_ratio", def.TrainRatio)
	v.SetDefault("cv_folds", def.CVFolds)
	v.SetDefault("k_min", def.KMin)
	v.SetDefault("k_max", def.KMax)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("stratify_bins", def.StratifyBins)
	v.SetDefault("target_column", def.TargetColumn)
	v.SetDefault("training_columns", def.TrainingColumns)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks parameter ranges and the training column contract.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log_level", "must be debug, info, warn or error", c.LogLevel)
	}
	if c.TrainRatio <= 0 || c.TrainRatio >= 1 {
		return errors.NewValidationError("train_ratio", "must be in (0, 1)", c.TrainRatio)
	}
	if c.CVFolds < 2 {
		return errors.NewValidationError("cv_folds", "must be >= 2", c.CVFolds)
	}
	if c.KMin < 1 {
		return errors.NewValidationError("k_min", "must be >= 1", c.KMin)
	}
	if c.KMax < c.KMin {
		return errors.NewValidationError("k_max", "must be >= k_min", c.KMax)
	}
	if c.OutlierPriceThreshold <= 0 {
		return errors.NewValidationError("outlier_price_threshold", "must be positive", c.OutlierPriceThreshold)
	}
	if c.TargetColumn == "" {
		return errors.NewValidationError("target_column", "must not be empty", c.TargetColumn)
	}
	if len(c.TrainingColumns) < 2 {
		return errors.NewValidationError("training_columns",
			"need at least one feature plus the target", len(c.TrainingColumns))
	}
	found := false
	for _, name := range c.TrainingColumns {
		if name == c.TargetColumn {
			found = true
			break
		}
	}
	if !found {
		return errors.NewValidationError("training_columns",
			"must include the target column", c.TargetColumn)
	}
	return nil
}

// FeatureColumns returns the training columns minus the target, order
// preserved.
func (c *Config) FeatureColumns() []string {
	features := make([]string, 0, len(c.TrainingColumns)-1)
	for _, name := range c.TrainingColumns {
		if name != c.TargetColumn {
			features = append(features, name)
		}
	}
	return features
}
