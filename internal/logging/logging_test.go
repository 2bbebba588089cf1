package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConfig_Merge(t *testing.T) {
	base := &Config{Level: LevelInfo, Format: FormatJSON}
	base.Merge(&Config{Level: LevelDebug})

	if base.Level != LevelDebug {
		t.Errorf("Level = %q, want %q (should merge)", base.Level, LevelDebug)
	}
	if base.Format != FormatJSON {
		t.Errorf("Format = %q, want %q (should not change)", base.Format, FormatJSON)
	}
}

func TestConfig_Finalize_AppliesDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != LevelInfo || cfg.Format != FormatText {
		t.Errorf("defaults = %+v, want info/text", cfg)
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "warn")
	t.Setenv("TEST_LOG_FORMAT", "json")

	cfg := &Config{Level: LevelDebug}
	if err := cfg.Finalize(&Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Level != LevelWarn || cfg.Format != FormatJSON {
		t.Errorf("after env = %+v, want warn/json", cfg)
	}
}

func TestConfig_Finalize_NormalizesNames(t *testing.T) {
	tests := []struct {
		level      Level
		format     Format
		wantLevel  Level
		wantFormat Format
	}{
		{"DEBUG", "JSON", LevelDebug, FormatJSON},
		{"Warning", "text", LevelWarn, FormatText},
		{"warning", "Text", LevelWarn, FormatText},
		{"Error", "", LevelError, FormatText},
	}
	for _, tt := range tests {
		cfg := &Config{Level: tt.level, Format: tt.format}
		if err := cfg.Finalize(nil); err != nil {
			t.Errorf("Finalize(%q, %q) error = %v", tt.level, tt.format, err)
			continue
		}
		if cfg.Level != tt.wantLevel || cfg.Format != tt.wantFormat {
			t.Errorf("Finalize(%q, %q) = %q/%q, want %q/%q",
				tt.level, tt.format, cfg.Level, cfg.Format, tt.wantLevel, tt.wantFormat)
		}
	}
}

func TestConfig_Finalize_SourceEnv(t *testing.T) {
	env := &Env{Source: "TEST_LOG_SOURCE"}

	t.Setenv("TEST_LOG_SOURCE", "true")
	cfg := &Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if !cfg.Source {
		t.Error("Source = false, want true from environment")
	}

	t.Setenv("TEST_LOG_SOURCE", "maybe")
	if err := (&Config{}).Finalize(env); err == nil {
		t.Error("Finalize() should reject a non-boolean source setting")
	}
}

func TestConfig_MergeSource(t *testing.T) {
	base := &Config{Source: true}
	base.Merge(&Config{})
	if !base.Source {
		t.Error("an overlay without source switched it off")
	}

	base = &Config{}
	base.Merge(&Config{Source: true})
	if !base.Source {
		t.Error("an overlay with source = true was not applied")
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"level", Config{Level: "verbose"}},
		{"format", Config{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() should reject an invalid " + tt.name)
			}
		})
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("%q.ToSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelWarn, Format: FormatJSON}, &buf)

	logger.Info("hidden")
	logger.Warn("counting pages failed", "path", "a.pdf")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "counting pages failed" || entry["path"] != "a.pdf" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&Config{Level: LevelDebug, Format: FormatText}, &buf).Debug("rendered", "page", 3)

	if !strings.Contains(buf.String(), "msg=rendered page=3") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNew_Source(t *testing.T) {
	var buf bytes.Buffer
	New(&Config{Level: LevelInfo, Format: FormatText, Source: true}, &buf).Info("rendered")

	if !strings.Contains(buf.String(), "source=") || !strings.Contains(buf.String(), "logging_test.go") {
		t.Errorf("text output = %q, want the calling file", buf.String())
	}
}
