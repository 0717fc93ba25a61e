package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	HashSHA256 = "sha256"
	HashXXH3   = "xxh3"

	DefaultHash = HashSHA256
)

// Apply policies for anchors that point past the end of a file.
const (
	PolicyStrict   = "strict"
	PolicyTruncate = "truncate"

	DefaultPolicy = PolicyStrict
)

const DefaultLogLevel = "warn"

// Settings are the user-tunable options read from .qop/config.toml and QOP_*
// environment variables.
type Settings struct {
	Hash  string        `mapstructure:"hash"`
	Apply ApplySettings `mapstructure:"apply"`
	Log   LogSettings   `mapstructure:"log"`
}

type ApplySettings struct {
	Policy string `mapstructure:"policy"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Hash:  DefaultHash,
		Apply: ApplySettings{Policy: DefaultPolicy},
		Log:   LogSettings{Level: DefaultLogLevel},
	}
}

// LoadSettings reads settings for the repo layout in cfg. A missing settings
// file is not an error.
func LoadSettings(cfg *RepoConfig) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(cfg.SettingsFile())
	v.SetConfigType("toml")

	def := DefaultSettings()
	v.SetDefault("hash", def.Hash)
	v.SetDefault("apply.policy", def.Apply.Policy)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix("qop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // apply.policy -> QOP_APPLY_POLICY
	v.AutomaticEnv()

	if _, err := os.Stat(cfg.SettingsFile()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %q: %w", cfg.SettingsFile(), err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat settings %q: %w", cfg.SettingsFile(), err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects unknown hash algorithms and apply policies.
func (s *Settings) Validate() error {
	switch s.Hash {
	case HashSHA256, HashXXH3:
	default:
		return fmt.Errorf("unsupported hash %q (want %s or %s)", s.Hash, HashSHA256, HashXXH3)
	}
	switch s.Apply.Policy {
	case PolicyStrict, PolicyTruncate:
	default:
		return fmt.Errorf("unsupported apply policy %q (want %s or %s)", s.Apply.Policy, PolicyStrict, PolicyTruncate)
	}
	return nil
}
