package speech

// Config captures runtime settings for the recognizer CLI.
type Config struct {
	// Engine is "whisper" (openai-whisper) or "whisperx".
	Engine string
	// Model is the model name, e.g. "base" or "large-v3".
	Model string
	// Language is an ISO 639-1 hint; empty lets the engine detect it.
	Language    string
	CUDAEnabled bool
	// VADMethod selects whisperx voice activity detection ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken   string
	UVXBinary string
	// WorkDir is the parent for per-run scratch directories; empty uses os.TempDir.
	WorkDir string
}

// Engine identifiers.
const (
	EngineWhisper  = "whisper"
	EngineWhisperX = "whisperx"
)

// Recognizer invocation constants.
const (
	DefaultModel      = "base"
	WhisperPackage    = "openai-whisper"
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
	UVXCommand        = "uvx"
)
