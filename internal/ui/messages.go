package ui

import (
	"time"

	"github.com/user/assistant-console/internal/audio"
	"github.com/user/assistant-console/internal/orchestrator"
)

// View identifies a screen of the client.
type View int

const (
	ViewChat View = iota
	ViewVoiceTools
)

func (v View) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewVoiceTools:
		return "voice tools"
	default:
		return "unknown"
	}
}

// OutcomeMsg delivers the result of a submitted query. It carries the view
// it was issued from so late arrivals for a view no longer shown can be
// recorded without being surfaced.
type OutcomeMsg struct {
	View    View
	Request orchestrator.Request
	Outcome orchestrator.Outcome
	Latency time.Duration
}

// SpeakOutcomeMsg delivers the result of a best-effort auto-speak call.
type SpeakOutcomeMsg struct {
	Outcome orchestrator.Outcome
}

// RecordingStartedMsg reports the result of the start gesture.
type RecordingStartedMsg struct {
	Err error
}

// ClipReadyMsg delivers the finalized clip from the stop gesture. A nil
// clip with nil error is a gesture race and is ignored.
type ClipReadyMsg struct {
	View View
	Clip *audio.Clip
	Err  error
}

// HealthTickMsg triggers a periodic re-render of the health badge.
type HealthTickMsg struct{}

// ClearErrorMsg clears a transient error banner.
type ClearErrorMsg struct{}
