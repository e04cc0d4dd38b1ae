package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/services"
)

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg, "error")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug detail", logging.String("key", "value"))

	content, err := os.ReadFile(cfg.LogFilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("log file line is not JSON: %v (%q)", err, content)
	}
	if record["msg"] != "debug detail" || record["key"] != "value" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["level"] != "debug" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
}

func TestConsoleLoggerFormatsComponentAndFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "processor")
	component.Info("mux complete",
		logging.String(logging.FieldFile, "/media/Show.S01E02.mkv"),
		logging.String(logging.FieldRunID, "run-1"),
		logging.Int("tracks", 3),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, fragment := range []string{"INFO", "processor: mux complete", "[Show.S01E02.mkv]", "tracks=3"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("run id should be hidden at info level: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := services.WithRunID(context.Background(), "run-9")
	ctx = services.WithStage(ctx, "mux")
	ctx = services.WithFile(ctx, "/media/a.mkv")
	logging.WithContext(ctx, logger).Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldRunID] != "run-9" || record[logging.FieldStage] != "mux" || record[logging.FieldFile] != "/media/a.mkv" {
		t.Fatalf("missing context fields: %v", record)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "extract failed", "subtitle_extract_failed",
		logging.Error(errors.New("boom")),
		logging.String(logging.FieldImpact, "original subtitle track kept"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "subtitle_extract_failed" {
		t.Fatalf("event type missing: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("error hint missing: %v", record)
	}
	if record[logging.FieldImpact] != "original subtitle track kept" {
		t.Fatalf("explicit impact overwritten: %v", record)
	}
}

func TestTeeHandlerHonoursChildLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	info := slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(logging.TeeHandler(info, nil, debug)).With(logging.String("component", "test"))
	logger.Debug("only debug")
	logger.Info("both")

	if strings.Contains(infoBuf.String(), "only debug") {
		t.Fatal("info handler received a debug record")
	}
	if !strings.Contains(infoBuf.String(), "both") || !strings.Contains(debugBuf.String(), "both") {
		t.Fatal("expected info record in both handlers")
	}
	if !strings.Contains(debugBuf.String(), "only debug") || !strings.Contains(debugBuf.String(), "component=test") {
		t.Fatalf("debug handler output incomplete: %q", debugBuf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
