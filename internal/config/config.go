package config

import (
	"os"
	"time"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrNegativeDelay = errors.New("thinking delay must not be negative")

const (
	defaultThinkingDelay = 500 * time.Millisecond
	defaultLogLevel      = "warn"
)

type Config struct {
	Difficulty    domain.DifficultyLevel `yaml:"difficulty"`
	OpponentFirst bool                   `yaml:"opponent_first"`
	ThinkingDelay time.Duration          `yaml:"thinking_delay"`
	LogLevel      string                 `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Difficulty:    domain.Expert,
		ThinkingDelay: defaultThinkingDelay,
		LogLevel:      defaultLogLevel,
	}
}

// New reads the YAML file at cfgPath. An empty path yields the defaults.
func New(cfgPath string) (Config, error) {
	if cfgPath == "" {
		return Default(), nil
	}
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, errors.WithMessage(err, "open config")
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !c.Difficulty.IsValid() {
		return errors.WithMessagef(domain.ErrInvalidDifficulty, "level %d", byte(c.Difficulty))
	}
	if c.ThinkingDelay < 0 {
		return ErrNegativeDelay
	}
	return nil
}
