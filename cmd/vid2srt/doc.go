// Package main hosts the vid2srt CLI entrypoint and command graph.
//
// The bare command runs one conversion: read the video path file, extract
// audio, transcribe it and write the transcript and SRT files. Subcommands
// scaffold and validate configuration, report dependency and directory
// status, and list recorded runs. Config resolution and logger setup live in
// commandContext so commands only assemble internal packages.
package main
