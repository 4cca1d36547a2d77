package backtest

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

// Config is the engine-level configuration, separate from the per-run
// strategy Parameters.
type Config struct {
	// InitialCapital is the cash the simulation starts with.
	InitialCapital float64 `yaml:"initial_capital" validate:"gt=0"`
	// ResultsFolder, when set, is where YAML reports are written.
	ResultsFolder string `yaml:"results_folder"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 1000,
		ResultsFolder:  "",
	}
}

// ParseConfig parses a YAML document into a Config, with defaults applied
// for omitted fields.
func ParseConfig(raw []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse engine config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	return nil
}
