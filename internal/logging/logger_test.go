package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vid2srt/internal/config"
	"vid2srt/internal/logging"
	"vid2srt/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigMirrorsToJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.File = true

	logger, closeLogs, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Info("file message", logging.String("video", "/tmp/movie.mp4"))

	content := readLog(t, cfg.LogFilePath())
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", content, err)
	}
	if record["msg"] != "file message" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if record["video"] != "/tmp/movie.mp4" {
		t.Fatalf("unexpected video attr: %v", record["video"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	logger.Info("message without caller")

	content := readLog(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(content, " INFO message without caller") {
		t.Fatalf("unexpected console line %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerRendersComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	component := logging.NewComponentLogger(logger, "transcode")
	component.Warn("audio extracted", logging.String("path", "my file.mp3"), logging.Int("bytes", 42), logging.Error(errors.New("boom")))

	content := readLog(t, logPath)
	for _, want := range []string{"WARN transcode: audio extracted", `path="my file.mp3"`, "bytes=42", "error=boom"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should render as a prefix, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "console", Level: "invalid", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Debug("hidden")
	logger.Info("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "shown") {
		t.Fatalf("expected info level filtering, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	ctx := services.WithRunID(context.Background(), "run-123")
	ctx = services.WithStage(ctx, "transcribe")
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldRunID] != "run-123" {
		t.Fatalf("run_id = %v", record[logging.FieldRunID])
	}
	if record[logging.FieldStage] != "transcribe" {
		t.Fatalf("stage = %v", record[logging.FieldStage])
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	logging.WarnWithContext(logger, "subtitle validation", "subtitle_validation_issue",
		logging.String(logging.FieldImpact, "subtitles may be out of sync"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record[logging.FieldEventType] != "subtitle_validation_issue" {
		t.Fatalf("event_type = %v", record[logging.FieldEventType])
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error_hint")
	}
	if record[logging.FieldImpact] != "subtitles may be out of sync" {
		t.Fatalf("impact = %v", record[logging.FieldImpact])
	}
}

func TestErrorWithContextKeepsCallerHint(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "error.log")
	logger, closeLogs, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	logging.ErrorWithContext(logger, "run failed", "run_failed",
		logging.String(logging.FieldErrorHint, "install ffmpeg"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["level"] != "error" {
		t.Fatalf("level = %v", record["level"])
	}
	if record[logging.FieldEventType] != "run_failed" {
		t.Fatalf("event_type = %v", record[logging.FieldEventType])
	}
	if record[logging.FieldErrorHint] != "install ffmpeg" {
		t.Fatalf("error_hint = %v", record[logging.FieldErrorHint])
	}
}

func TestCloseReleasesLogFiles(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "output.log")
	mirrorPath := filepath.Join(dir, "mirror.log")
	logger, closeLogs, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{outputPath},
		FilePath:    mirrorPath,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("before close")
	if err := closeLogs(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if err := closeLogs(); err != nil {
		t.Fatalf("second close returned error: %v", err)
	}
	logger.Info("after close")

	for _, path := range []string{outputPath, mirrorPath} {
		content := readLog(t, path)
		if !strings.Contains(content, "before close") {
			t.Fatalf("%s missing record written before close: %q", path, content)
		}
		if strings.Contains(content, "after close") {
			t.Fatalf("%s still written after close: %q", path, content)
		}
	}
}

func TestCloseLeavesStandardStreamsOpen(t *testing.T) {
	_, closeLogs, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{"stdout", "stderr"}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := closeLogs(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if _, err := os.Stderr.Stat(); err != nil {
		t.Fatalf("stderr closed: %v", err)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
