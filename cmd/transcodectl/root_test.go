package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/transcodectl/internal/dispatch"
	"github.com/danmuck/transcodectl/internal/testutil/testlog"
)

func executeRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(EnvConfigPath, "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootDryRunArgs(t *testing.T) {
	testlog.Start(t)
	bin := filepath.Join(t.TempDir(), "ffmpeg")
	out, err := executeRoot(t, "",
		"--dry-run", "--ffmpeg", bin, "--input", "/media/in/samplevideo.mp4",
		"Trimming", " Blur")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "+ " + bin + " -y -i /media/in/samplevideo.mp4 -ss 00:00:30 -t 00:01:00 -c:v copy -c:a copy " +
		filepath.Join("/media/in", "trimmed_video.mp4")
	if !strings.Contains(out, want) {
		t.Fatalf("expected dry run line %q in output:\n%s", want, out)
	}
	if !strings.Contains(out, dispatch.UnknownLine(" Blur")) {
		t.Fatalf("expected unknown line in output:\n%s", out)
	}
}

func TestRootPromptsWithoutArgs(t *testing.T) {
	testlog.Start(t)
	out, err := executeRoot(t, "Get Details\n",
		"--dry-run", "--ffprobe", "/opt/ffprobe", "--input", "/media/in/samplevideo.mp4")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, dispatch.Prompt) {
		t.Fatalf("expected prompt first, got:\n%s", out)
	}
	if !strings.Contains(out, "+ /opt/ffprobe -i /media/in/samplevideo.mp4") {
		t.Fatalf("expected probe command in output:\n%s", out)
	}
}

func TestRootStrictReportsFailures(t *testing.T) {
	testlog.Start(t)
	_, err := executeRoot(t, "", "--dry-run", "--strict", "--input", "a.mp4", "nope")
	if !errors.Is(err, errStrict) {
		t.Fatalf("expected errStrict, got %v", err)
	}
	if _, err := executeRoot(t, "", "--dry-run", "--input", "a.mp4", "nope"); err != nil {
		t.Fatalf("non-strict run should not fail: %v", err)
	}
}

func TestRootRequiresInput(t *testing.T) {
	testlog.Start(t)
	if _, err := executeRoot(t, "", "--dry-run", "trimming"); err == nil {
		t.Fatalf("expected missing input error")
	}
}

func TestRootFlagsOverrideConfigFile(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
input_path = "/from/config/in.mp4"
ffmpeg_path = "/from/config/ffmpeg"
`)
	out, err := executeRoot(t, "",
		"--config", path, "--dry-run", "--input", "/from/flag/in.mp4", "remove video")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "+ /from/config/ffmpeg -y -i /from/flag/in.mp4 -vn") {
		t.Fatalf("expected flag input with config tool in output:\n%s", out)
	}
}

func TestRootWritesMetricsTextfile(t *testing.T) {
	testlog.Start(t)
	metrics := filepath.Join(t.TempDir(), "transcodectl.prom")
	if _, err := executeRoot(t, "",
		"--dry-run", "--input", "a.mp4", "--metrics-textfile", metrics, "mute audio"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `operation="mute audio"`) {
		t.Fatalf("expected mute audio sample in metrics:\n%s", data)
	}
}

func TestListCommand(t *testing.T) {
	testlog.Start(t)
	out, err := executeRoot(t, "", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 operations, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "trimming") || !strings.HasPrefix(lines[9], "get details") {
		t.Fatalf("unexpected list order:\n%s", out)
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "transcodectl.toml")
	if _, err := executeRoot(t, "", "init", "--output", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := loadAppConfig(path)
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if cfg.Transcode.InputPath != filepath.Join(filepath.Dir(path), "samplevideo.mp4") {
		t.Fatalf("unexpected input path: %q", cfg.Transcode.InputPath)
	}
	if _, err := executeRoot(t, "", "init", "--output", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}
