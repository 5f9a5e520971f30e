package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/transcodectl/internal/transcode"
)

const (
	EnvConfigPath     = "TRANSCODECTL_CONFIG"
	defaultConfigFile = "transcodectl.toml"
)

// transcodectl.toml key mapping to runtime settings.
type fileConfig struct {
	FFmpegPath      string `toml:"ffmpeg_path"`
	FFprobePath     string `toml:"ffprobe_path"`
	InputPath       string `toml:"input_path"`
	OutputDir       string `toml:"output_dir"`
	Timeout         string `toml:"timeout"`
	TimeoutMS       int64  `toml:"timeout_ms"`
	MetricsTextfile string `toml:"metrics_textfile"`
}

type appConfig struct {
	Transcode       transcode.Config
	MetricsTextfile string
}

func defaultAppConfig() appConfig {
	return appConfig{Transcode: transcode.DefaultConfig()}
}

// resolveConfigPath picks the explicit path, then the env var, then
// ./transcodectl.toml when it exists. "" means run on defaults.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load transcodectl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return appConfig{}, fmt.Errorf("load transcodectl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("ffmpeg_path") {
		cfg.Transcode.FFmpegPath = toolPath(path, raw.FFmpegPath)
	}
	if meta.IsDefined("ffprobe_path") {
		cfg.Transcode.FFprobePath = toolPath(path, raw.FFprobePath)
	}
	if meta.IsDefined("input_path") {
		cfg.Transcode.InputPath = relativeTo(path, raw.InputPath)
	}
	if meta.IsDefined("output_dir") {
		cfg.Transcode.OutputDir = relativeTo(path, raw.OutputDir)
	}
	if meta.IsDefined("timeout") && meta.IsDefined("timeout_ms") {
		return appConfig{}, errors.New("load transcodectl config: set timeout or timeout_ms, not both")
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return appConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Transcode.Timeout = d
	}
	if meta.IsDefined("timeout_ms") {
		cfg.Transcode.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = relativeTo(path, raw.MetricsTextfile)
	}

	if cfg.Transcode.Timeout < 0 {
		return appConfig{}, errors.New("load transcodectl config: timeout must not be negative")
	}
	return cfg, nil
}

// relativeTo resolves a relative path value against the config file's directory.
func relativeTo(configPath, value string) string {
	v := strings.TrimSpace(value)
	if v == "" || filepath.IsAbs(v) {
		return v
	}
	return filepath.Join(filepath.Dir(configPath), v)
}

// toolPath is relativeTo for executables, except bare names such as
// "ffmpeg" stay untouched for PATH lookup.
func toolPath(configPath, value string) string {
	v := strings.TrimSpace(value)
	if !strings.ContainsRune(v, filepath.Separator) {
		return v
	}
	return relativeTo(configPath, v)
}
