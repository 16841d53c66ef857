package transcode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vid2srt/internal/logging"
	"vid2srt/internal/media/ffprobe"
)

type fakeRunner struct {
	calls  [][]string
	write  bool
	output string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.write {
		dest := args[len(args)-1]
		if err := os.WriteFile(dest, []byte("ID3 fake audio"), 0o644); err != nil {
			return nil, err
		}
	}
	return []byte(f.output), f.err
}

func foundPath(name string) (string, error) { return "/usr/bin/" + filepath.Base(name), nil }

func missingPath(name string) (string, error) { return "", errors.New("executable file not found") }

func audioProbe(streams ...string) Prober {
	return func(context.Context, string, string) (ffprobe.Result, error) {
		result := ffprobe.Result{Format: ffprobe.Format{Duration: "42.5"}}
		for i, kind := range streams {
			result.Streams = append(result.Streams, ffprobe.Stream{Index: i, CodecType: kind})
		}
		return result, nil
	}
}

func newTestTranscoder(t *testing.T, opts Options, runner *fakeRunner) *Transcoder {
	t.Helper()
	tr := New(opts, logging.NewNop())
	tr.WithCommandRunner(runner.run)
	tr.WithLookPath(foundPath)
	tr.WithProber(audioProbe("video", "audio"))
	return tr
}

func writeVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAudioPath(t *testing.T) {
	tests := []struct {
		video, ext, want string
	}{
		{"/videos/movie.mp4", "mp3", "/videos/movie.mp3"},
		{"/videos/my.show.s01e01.mkv", ".wav", "/videos/my.show.s01e01.wav"},
		{"/videos/noext", "mp3", "/videos/noext.mp3"},
		{"clip.MOV", "mp3", "clip.mp3"},
	}
	for _, tt := range tests {
		if got := AudioPath(tt.video, tt.ext); got != tt.want {
			t.Fatalf("AudioPath(%q, %q) = %q, want %q", tt.video, tt.ext, got, tt.want)
		}
	}
}

func TestExtractAudioBuildsFFmpegCommand(t *testing.T) {
	video := writeVideo(t, "movie.mp4")
	runner := &fakeRunner{write: true}
	tr := newTestTranscoder(t, Options{Extension: "mp3", Overwrite: true, Probe: true}, runner)

	audio, err := tr.ExtractAudio(context.Background(), video)
	if err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	wantAudio := filepath.Join(filepath.Dir(video), "movie.mp3")
	if audio != wantAudio {
		t.Fatalf("audio path = %q, want %q", audio, wantAudio)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected one ffmpeg call, got %d", len(runner.calls))
	}
	want := []string{"/usr/bin/ffmpeg", "-hide_banner", "-loglevel", "error", "-y", "-i", video, "-vn", wantAudio}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", runner.calls[0], want)
	}
}

func TestExtractReportsProbeDetails(t *testing.T) {
	video := writeVideo(t, "movie.mkv")
	tr := newTestTranscoder(t, Options{Overwrite: true, Probe: true}, &fakeRunner{write: true})

	result, err := tr.Extract(context.Background(), video)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.MediaSeconds != 42.5 || result.AudioStreams != 1 || result.Reused {
		t.Fatalf("unexpected extraction: %+v", result)
	}
}

func TestExtractPrefersDefaultAudioLanguage(t *testing.T) {
	tests := []struct {
		name    string
		streams []ffprobe.Stream
		want    string
	}{
		{
			name: "default stream wins",
			streams: []ffprobe.Stream{
				{Index: 1, CodecType: "audio", Tags: map[string]string{"language": "eng"}},
				{Index: 2, CodecType: "audio", Tags: map[string]string{"language": "FRA"}, Disposition: map[string]int{"default": 1}},
			},
			want: "fra",
		},
		{
			name: "first stream without default",
			streams: []ffprobe.Stream{
				{Index: 1, CodecType: "audio", Tags: map[string]string{"LANGUAGE": "ger"}},
				{Index: 2, CodecType: "audio", Tags: map[string]string{"language": "eng"}},
			},
			want: "ger",
		},
		{
			name:    "untagged",
			streams: []ffprobe.Stream{{Index: 1, CodecType: "audio"}},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := writeVideo(t, "movie.mkv")
			tr := newTestTranscoder(t, Options{Overwrite: true, Probe: true}, &fakeRunner{write: true})
			tr.WithProber(func(context.Context, string, string) (ffprobe.Result, error) {
				streams := append([]ffprobe.Stream{{Index: 0, CodecType: "video"}}, tt.streams...)
				return ffprobe.Result{Streams: streams, Format: ffprobe.Format{Duration: "10", Size: "2048"}}, nil
			})

			result, err := tr.Extract(context.Background(), video)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if result.AudioLanguage != tt.want {
				t.Fatalf("AudioLanguage = %q, want %q", result.AudioLanguage, tt.want)
			}
			if result.SourceBytes != 2048 {
				t.Fatalf("SourceBytes = %d, want 2048", result.SourceBytes)
			}
		})
	}
}

func TestExtractFailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) (*Transcoder, string)
		reason Reason
	}{
		{
			name: "source missing",
			setup: func(t *testing.T) (*Transcoder, string) {
				tr := newTestTranscoder(t, Options{Overwrite: true}, &fakeRunner{write: true})
				return tr, filepath.Join(t.TempDir(), "absent.mp4")
			},
			reason: ReasonSourceMissing,
		},
		{
			name: "source is directory",
			setup: func(t *testing.T) (*Transcoder, string) {
				tr := newTestTranscoder(t, Options{Overwrite: true}, &fakeRunner{write: true})
				return tr, t.TempDir()
			},
			reason: ReasonSourceMissing,
		},
		{
			name: "no audio stream",
			setup: func(t *testing.T) (*Transcoder, string) {
				tr := newTestTranscoder(t, Options{Overwrite: true, Probe: true}, &fakeRunner{write: true})
				tr.WithProber(audioProbe("video"))
				return tr, writeVideo(t, "silent.mp4")
			},
			reason: ReasonNoAudioStream,
		},
		{
			name: "tool missing",
			setup: func(t *testing.T) (*Transcoder, string) {
				tr := newTestTranscoder(t, Options{Overwrite: true}, &fakeRunner{write: true})
				tr.WithLookPath(missingPath)
				return tr, writeVideo(t, "movie.mp4")
			},
			reason: ReasonToolMissing,
		},
		{
			name: "tool failed",
			setup: func(t *testing.T) (*Transcoder, string) {
				runner := &fakeRunner{output: "Invalid data found when processing input\n", err: errors.New("exit status 1")}
				return newTestTranscoder(t, Options{Overwrite: true}, runner), writeVideo(t, "corrupt.mp4")
			},
			reason: ReasonToolFailed,
		},
		{
			name: "no output",
			setup: func(t *testing.T) (*Transcoder, string) {
				return newTestTranscoder(t, Options{Overwrite: true}, &fakeRunner{}), writeVideo(t, "movie.mp4")
			},
			reason: ReasonNoOutput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, video := tt.setup(t)
			audio, err := tr.ExtractAudio(context.Background(), video)
			if err == nil {
				t.Fatalf("expected error, got audio %q", audio)
			}
			if audio != "" {
				t.Fatalf("expected empty audio path on failure, got %q", audio)
			}
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if terr.Reason != tt.reason || !IsReason(err, tt.reason) {
				t.Fatalf("reason = %s, want %s", terr.Reason, tt.reason)
			}
		})
	}
}

func TestToolFailedKeepsDetailAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	runner := &fakeRunner{output: "  moov atom not found\n", err: cause}
	tr := newTestTranscoder(t, Options{Overwrite: true}, runner)

	_, err := tr.ExtractAudio(context.Background(), writeVideo(t, "movie.mp4"))
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Detail != "moov atom not found" {
		t.Fatalf("detail = %q", terr.Detail)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected underlying cause to be preserved")
	}
}

func TestProbeFailureIsNotFatal(t *testing.T) {
	tr := newTestTranscoder(t, Options{Overwrite: true, Probe: true}, &fakeRunner{write: true})
	tr.WithProber(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("ffprobe exploded")
	})
	result, err := tr.Extract(context.Background(), writeVideo(t, "movie.mp4"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.MediaSeconds != 0 {
		t.Fatalf("expected unknown duration, got %v", result.MediaSeconds)
	}
}

func TestExtractReusesExistingAudioWhenOverwriteDisabled(t *testing.T) {
	video := writeVideo(t, "movie.mp4")
	existing := AudioPath(video, "mp3")
	if err := os.WriteFile(existing, []byte("old audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{write: true}
	tr := newTestTranscoder(t, Options{Overwrite: false}, runner)

	result, err := tr.Extract(context.Background(), video)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.Reused || result.AudioPath != existing {
		t.Fatalf("expected reuse of %q, got %+v", existing, result)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected ffmpeg not to run, got %v", runner.calls)
	}
}

func TestExtractSkipsWhenSourceIsTargetAudio(t *testing.T) {
	audio := writeVideo(t, "podcast.mp3")
	runner := &fakeRunner{write: true}
	tr := newTestTranscoder(t, Options{Overwrite: true}, runner)

	result, err := tr.Extract(context.Background(), audio)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.Reused || result.AudioPath != audio || len(runner.calls) != 0 {
		t.Fatalf("expected source reuse without ffmpeg, got %+v calls=%v", result, runner.calls)
	}
}

func TestExtractHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{err: errors.New("signal: killed")}
	tr := newTestTranscoder(t, Options{Overwrite: true}, runner)
	video := writeVideo(t, "movie.mp4")
	cancel()

	_, err := tr.ExtractAudio(ctx, video)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var terr *Error
	if errors.As(err, &terr) {
		t.Fatalf("cancellation should not be a transcode error: %v", err)
	}
}

func TestBuildArgsNoOverwrite(t *testing.T) {
	args := buildArgs("in.mp4", "in.mp3", false)
	if args[3] != "-n" {
		t.Fatalf("expected -n when overwrite is disabled, got %v", args)
	}
}
