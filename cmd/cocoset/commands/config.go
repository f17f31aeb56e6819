package commands

import (
	"errors"

	"cocoset/pkg/core"

	"github.com/spf13/viper"
)

type Config struct {
	Manifest    string         `mapstructure:"manifest"`
	ClassesFile string         `mapstructure:"classes_file"`
	CacheDir    string         `mapstructure:"cache_dir"`
	OutputDir   string         `mapstructure:"output_dir"`
	Defaults    DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig overrides the stock default request used when the
// operator declines manual input.
type DefaultsConfig struct {
	TotalImages   int      `mapstructure:"total_images"`
	TrainFraction float64  `mapstructure:"train_fraction"`
	ValFraction   float64  `mapstructure:"val_fraction"`
	TestFraction  float64  `mapstructure:"test_fraction"`
	Ratio         string   `mapstructure:"ratio"`
	Classes       []string `mapstructure:"classes"`
	LabelKind     string   `mapstructure:"label_kind"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".cocoset")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultRequest merges the config's defaults block over the stock
// defaults and validates the result.
func (c Config) DefaultRequest() (core.DatasetRequest, error) {
	req := core.DefaultRequest()
	d := c.Defaults
	if d.TotalImages > 0 {
		req.TotalImages = d.TotalImages
	}
	if d.TrainFraction > 0 || d.ValFraction > 0 || d.TestFraction > 0 {
		req.TrainFraction = d.TrainFraction
		req.ValFraction = d.ValFraction
		req.TestFraction = d.TestFraction
	}
	if d.Ratio != "" {
		ratio, err := core.ParseRatio(d.Ratio)
		if err != nil {
			return core.DatasetRequest{}, err
		}
		req.Ratio = ratio
	}
	if len(d.Classes) > 0 {
		req.Classes = d.Classes
	}
	if d.LabelKind != "" {
		kind, err := core.ParseLabelKind(d.LabelKind)
		if err != nil {
			return core.DatasetRequest{}, err
		}
		req.LabelKind = kind
	}
	return core.NewDatasetRequest(req.TotalImages, req.TrainFraction, req.ValFraction,
		req.TestFraction, req.Ratio, req.Classes, req.LabelKind)
}
