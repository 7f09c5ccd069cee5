// Package config loads a JMC project's jmc.yml/jmc.yaml configuration:
// the external "Configuration" input the Lexer Driver is built around
// (datapack namespace, pack_format version gate, reserved load/private
// function names).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Configuration is the Lexer Driver's external input (core spec §6).
type Configuration struct {
	// Namespace is the lowercase datapack namespace every function and
	// resource path is registered under.
	Namespace string `mapstructure:"namespace"`
	// PackFormat is the Minecraft pack_format integer; 0 disables
	// version gating entirely (see internal/compile/packversion).
	PackFormat int `mapstructure:"pack_format"`
	// LoadName is the reserved function path for the implicit load
	// function; a user function definition may not collide with it.
	LoadName string `mapstructure:"load_name"`
	// PrivateName is the reserved prefix for private (non-user-facing)
	// functions; a user function definition may not equal it, and a
	// definition that falls under it is flagged with a warning.
	PrivateName string `mapstructure:"private_name"`
}

// Load reads jmc.yml/jmc.yaml from the current directory, falling back
// to defaults when the file does not exist.
func Load() (*Configuration, error) {
	v := viper.New()

	v.SetDefault("namespace", "")
	v.SetDefault("pack_format", 0)
	v.SetDefault("load_name", "__load__")
	v.SetDefault("private_name", "__private__")

	v.SetConfigName("jmc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read jmc.yml: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jmc.yml: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InProject reports whether the current directory holds a jmc.yml/
// jmc.yaml project file.
func InProject() bool {
	if _, err := os.Stat("jmc.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("jmc.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks upward from the working directory looking for
// jmc.yml/jmc.yaml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "jmc.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "jmc.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a JMC project (no jmc.yml found)")
		}
		dir = parent
	}
}

// validateConfig rejects a Configuration that cannot drive a compile.
func validateConfig(cfg *Configuration) error {
	if cfg.Namespace == "" {
		return fmt.Errorf("jmc.yml: namespace is required")
	}
	if cfg.Namespace != filepath.Base(cfg.Namespace) {
		return fmt.Errorf("jmc.yml: namespace must not contain path separators, got: %s", cfg.Namespace)
	}
	return nil
}
