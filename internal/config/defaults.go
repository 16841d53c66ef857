package config

const (
	defaultConfigPath     = "~/.config/vid2srt/config.toml"
	defaultVideoPathFile  = "path_video.txt"
	defaultStateDir       = "~/.local/share/vid2srt"
	defaultLogDir         = "~/.local/share/vid2srt/logs"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultAudioExtension = "mp3"
	defaultSpeechEngine   = EngineWhisper
	defaultSpeechModel    = "base"
	defaultUVXBinary      = "uvx"
	defaultVADMethod      = "silero"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Speech engine identifiers.
const (
	EngineWhisper  = "whisper"
	EngineWhisperX = "whisperx"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VideoPathFile: defaultVideoPathFile,
			StateDir:      defaultStateDir,
			LogDir:        defaultLogDir,
		},
		Transcode: Transcode{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			AudioExtension: defaultAudioExtension,
			Overwrite:      true,
			KeepAudio:      true,
			ProbeSource:    true,
		},
		Speech: Speech{
			Engine:    defaultSpeechEngine,
			Model:     defaultSpeechModel,
			UVXBinary: defaultUVXBinary,
			VADMethod: defaultVADMethod,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
