// Package speech wraps the speech-recognition engines vid2srt drives.
//
// Client runs openai-whisper or whisperx through uvx, asks for JSON output in
// a scratch directory, and converts the result into a Transcript whose
// segments feed the SRT serializer. Tests swap the command runner for a fake
// that writes the JSON itself.
package speech
