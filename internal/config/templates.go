package config

import (
	"fmt"
	"os"
)

// Template returns the starter transcodectl.toml content.
func Template() string {
	return transcodectlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.WriteFile(path, []byte(transcodectlTemplate), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	return nil
}

const transcodectlTemplate = `# transcodectl configuration.
# Relative paths resolve against this file's directory; bare tool names
# are looked up on PATH.

ffmpeg_path = "ffmpeg"
ffprobe_path = "ffprobe"

# The one video every operation reads.
input_path = "samplevideo.mp4"

# Results land beside the input unless output_dir is set.
# output_dir = "out"

# Per-operation limit; the running tool is killed when it expires. "0s"
# disables it. timeout_ms takes milliseconds instead; set only one of them.
timeout = "30m"
# timeout_ms = 1800000

# Prometheus textfile collector output, written after each run.
# metrics_textfile = "transcodectl.prom"
`
