package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

type AppConfig struct {
	LogLevel     string        `json:"log_level"`
	StressConfig *StressConfig `json:"stress"`
}

func New() *AppConfig {
	return &AppConfig{
		LogLevel:     "info",
		StressConfig: NewStressConfig(),
	}
}

// Load reads a JSON config file on top of the defaults returned by New.
// Fields missing from the file keep their default values.
func Load(fileName string) (*AppConfig, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config '%s'", fileName)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config '%s'", fileName)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config '%s'", fileName)
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	s := c.StressConfig
	if s == nil {
		return errors.New("missing stress section")
	}
	if s.Ops < 0 {
		return errors.Errorf("ops must not be negative, got %d", s.Ops)
	}
	if s.KeySpace <= 0 {
		return errors.Errorf("key_space must be positive, got %d", s.KeySpace)
	}
	if s.InsertProbability < 0 || s.InsertProbability > 1 {
		return errors.Errorf("insert_probability must be in [0, 1], got %v", s.InsertProbability)
	}
	if s.ProgressInterval <= 0 {
		return errors.Errorf("progress_interval must be positive, got %v", s.ProgressInterval)
	}
	return nil
}

// Duration is a time.Duration read from JSON as a string like "1.5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration '%s'", s)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
