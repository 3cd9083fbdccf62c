package orchestrator

import "github.com/user/assistant-console/internal/audio"

// Mode selects the backend operation family for a query. The set is closed;
// routing switches over it exhaustively.
type Mode int

const (
	ModeRAG Mode = iota
	ModeDirectChat
	ModeVoiceRoundTrip
	ModeTranscribeOnly
	ModeSynthesizeOnly
)

func (m Mode) String() string {
	switch m {
	case ModeRAG:
		return "rag"
	case ModeDirectChat:
		return "chat"
	case ModeVoiceRoundTrip:
		return "voice"
	case ModeTranscribeOnly:
		return "transcribe"
	case ModeSynthesizeOnly:
		return "synthesize"
	default:
		return "unknown"
	}
}

// TakesClip reports whether the mode consumes a captured clip rather than
// typed text.
func (m Mode) TakesClip() bool {
	return m == ModeVoiceRoundTrip || m == ModeTranscribeOnly
}

// Request is one user query: typed text or a captured clip, plus the
// selected mode and screen-context passthrough.
type Request struct {
	Mode          Mode
	Text          string
	Clip          *audio.Clip
	ReadScreen    bool
	ScreenContext string
}

// OutcomeKind tags the normalized result of a submission.
type OutcomeKind int

const (
	OutcomeAnsweredText OutcomeKind = iota
	OutcomeAnsweredVoice
	OutcomeTranscribed
	OutcomeSynthesized
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAnsweredText:
		return "answered_text"
	case OutcomeAnsweredVoice:
		return "answered_voice"
	case OutcomeTranscribed:
		return "transcribed"
	case OutcomeSynthesized:
		return "synthesized"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failure carries a human-readable message and, where available, a
// backend-supplied error code.
type Failure struct {
	Code    string
	Message string
}

// Outcome is the normalized result of exactly one backend request.
type Outcome struct {
	Kind          OutcomeKind
	Answer        string
	Transcription string
	Citations     []string
	Audio         []byte
	Model         string
	Failure       *Failure
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeFailed
}
