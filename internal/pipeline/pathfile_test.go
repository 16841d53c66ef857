package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadVideoPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content *string
		want    string
		wantErr error
	}{
		{name: "trims whitespace", content: strPtr("  /media/movie.mkv \r\n"), want: "/media/movie.mkv"},
		{name: "keeps inner spaces", content: strPtr("/media/My Movie.mkv\n"), want: "/media/My Movie.mkv"},
		{name: "empty", content: strPtr(""), wantErr: ErrVideoPathEmpty},
		{name: "whitespace only", content: strPtr(" \n\t "), wantErr: ErrVideoPathEmpty},
		{name: "missing", wantErr: ErrVideoPathMissing},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "case", string(rune('a'+i)), "path_video.txt")
			if tt.content != nil {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte(*tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := ReadVideoPath(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadVideoPath: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "vid2srt.lock")
	first, err := AcquireLock(path)
	if err != nil {
		t.Fatalf("first AcquireLock: %v", err)
	}
	if _, err := AcquireLock(path); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	_ = second.Release()
	_ = second.Release()
}

func strPtr(s string) *string { return &s }
