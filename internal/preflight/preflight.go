package preflight

import (
	"vid2srt/internal/config"
)

// VideoPathFileCheck names the path file check in RunAll results.
const VideoPathFileCheck = "Video path file"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableFile(VideoPathFileCheck, cfg.Paths.VideoPathFile),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}
	if cfg.Logging.File {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if cfg.Paths.WorkDir != "" {
		results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	}
	return results
}
