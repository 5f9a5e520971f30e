package transcode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("transcode: invalid config")

// Config is the explicit invoker configuration.
type Config struct {
	FFmpegPath  string
	FFprobePath string
	InputPath   string
	// OutputDir defaults to the directory holding InputPath.
	OutputDir string
	// Timeout bounds each external process. Zero disables the bound.
	Timeout time.Duration
	DryRun  bool
}

func DefaultConfig() Config {
	return Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     30 * time.Minute,
	}
}

// WithDefaults fills empty tool paths and derives OutputDir from InputPath.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	c.FFmpegPath = strings.TrimSpace(c.FFmpegPath)
	if c.FFmpegPath == "" {
		c.FFmpegPath = def.FFmpegPath
	}
	c.FFprobePath = strings.TrimSpace(c.FFprobePath)
	if c.FFprobePath == "" {
		c.FFprobePath = def.FFprobePath
	}
	c.InputPath = strings.TrimSpace(c.InputPath)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" && c.InputPath != "" {
		c.OutputDir = inputDir(c.InputPath)
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative (got %v)", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

func inputDir(input string) string {
	abs, err := filepath.Abs(input)
	if err != nil {
		return filepath.Dir(input)
	}
	return filepath.Dir(abs)
}
