package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestTemplateDecodes(t *testing.T) {
	var raw map[string]any
	if _, err := toml.Decode(Template(), &raw); err != nil {
		t.Fatalf("template is not valid toml: %v", err)
	}
	if raw["input_path"] != "samplevideo.mp4" {
		t.Fatalf("unexpected input_path: %v", raw["input_path"])
	}
	if raw["timeout"] != "30m" {
		t.Fatalf("unexpected timeout: %v", raw["timeout"])
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcodectl.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing config error")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("clobber: %v", err)
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != Template() {
		t.Fatalf("forced write did not replace content")
	}
}
