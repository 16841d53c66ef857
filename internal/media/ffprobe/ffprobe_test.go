package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sample = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "duration": "120.000"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "duration": "119.500", "channels": 2,
     "sample_rate": "48000", "tags": {"language": "ENG"}, "disposition": {"default": 1}},
    {"index": 2, "codec_name": "ac3", "codec_type": "audio", "channels": 6, "tags": {"LANGUAGE": "fre"}}
  ],
  "format": {"filename": "movie.mp4", "nb_streams": 3, "duration": "120.25", "size": "1000", "format_name": "mov,mp4"}
}`

func TestParseAndHelpers(t *testing.T) {
	result, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 120.25 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	audio := result.AudioStreams()
	if audio[0].Language() != "eng" || !audio[0].IsDefault() {
		t.Fatalf("unexpected first audio stream: %+v", audio[0])
	}
	if audio[1].Language() != "fre" || audio[1].IsDefault() {
		t.Fatalf("unexpected second audio stream: %+v", audio[1])
	}
}

func TestDurationFallsBackToAudioStream(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Duration: "300"},
			{CodecType: "audio", Duration: "12.5"},
			{CodecType: "audio", Duration: "bad"},
		},
		Format: Format{Duration: "N/A"},
	}
	if got := result.DurationSeconds(); got != 12.5 {
		t.Fatalf("expected audio stream duration fallback, got %v", got)
	}
	if (Result{}).DurationSeconds() != 0 {
		t.Fatal("expected zero duration for empty result")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInspectUsesBinaryOutput(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payload, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat '" + payload + "'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Inspect(context.Background(), stub, "/videos/movie.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.Format.Filename != "movie.mp4" {
		t.Fatalf("unexpected filename %q", result.Format.Filename)
	}

	if _, err := Inspect(context.Background(), stub, " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInspectReportsToolFailure(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'No such file' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(context.Background(), stub, "/videos/missing.mp4"); err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
}
