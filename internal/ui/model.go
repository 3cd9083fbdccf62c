package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/user/assistant-console/internal/api"
	"github.com/user/assistant-console/internal/audio"
	"github.com/user/assistant-console/internal/health"
	"github.com/user/assistant-console/internal/history"
	"github.com/user/assistant-console/internal/orchestrator"
)

// Model is the root bubbletea model for the assistant console.
type Model struct {
	orch     *orchestrator.Orchestrator
	capture  *audio.CaptureController
	playback *audio.PlaybackController
	store    *history.Store
	poller   *health.Poller
	client   *api.Client

	// Mode state
	view       View
	mode       orchestrator.Mode
	autoSpeak  bool
	readScreen bool

	// Interaction state. busy gates send and mic while a request is in
	// flight; the orchestrator does not deduplicate concurrent calls.
	input         string
	transcription string
	busy          bool
	recording     bool

	// UI state
	width        int
	height       int
	errorMessage string
	statusText   string
}

// Deps are the collaborators the model renders and drives.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Capture      *audio.CaptureController
	Playback     *audio.PlaybackController
	History      *history.Store
	Poller       *health.Poller
	Client       *api.Client
	AutoSpeak    bool
	ReadScreen   bool
}

func New(deps Deps) Model {
	return Model{
		orch:       deps.Orchestrator,
		capture:    deps.Capture,
		playback:   deps.Playback,
		store:      deps.History,
		poller:     deps.Poller,
		client:     deps.Client,
		mode:       orchestrator.ModeRAG,
		autoSpeak:  deps.AutoSpeak,
		readScreen: deps.ReadScreen,
		statusText: "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	return healthTickCmd()
}

func healthTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return HealthTickMsg{}
	})
}

func clearErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// submitCmd issues exactly one backend request for the given query.
func (m Model) submitCmd(req orchestrator.Request, view View) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		start := time.Now()
		outcome := orch.Submit(context.Background(), req)
		return OutcomeMsg{
			View:    view,
			Request: req,
			Outcome: outcome,
			Latency: time.Since(start),
		}
	}
}

// speakCmd synthesizes and plays answer text. Best-effort: failure is
// logged and never affects the primary outcome.
func (m Model) speakCmd(text string) tea.Cmd {
	orch := m.orch
	playback := m.playback
	return func() tea.Msg {
		outcome := orch.Submit(context.Background(), orchestrator.Request{
			Mode: orchestrator.ModeSynthesizeOnly,
			Text: text,
		})
		if outcome.Kind == orchestrator.OutcomeSynthesized {
			if err := playback.PlayEmbedded(outcome.Audio); err != nil {
				log.Warn().Err(err).Msg("Auto-speak playback failed")
			}
		}
		return SpeakOutcomeMsg{Outcome: outcome}
	}
}

func (m Model) startRecordingCmd() tea.Cmd {
	capture := m.capture
	return func() tea.Msg {
		return RecordingStartedMsg{Err: capture.Start(context.Background())}
	}
}

func (m Model) stopRecordingCmd(view View) tea.Cmd {
	capture := m.capture
	return func() tea.Msg {
		clip, err := capture.Stop(context.Background())
		return ClipReadyMsg{View: view, Clip: clip, Err: err}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RecordingStartedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.statusText = "Ready"
			return m, clearErrorCmd()
		}
		m.recording = true
		m.statusText = "Recording... press ctrl+r to stop"
		return m, nil

	case ClipReadyMsg:
		m.recording = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.statusText = "Ready"
			return m, clearErrorCmd()
		}
		if msg.Clip == nil {
			// Gesture raced an unrelated state change; nothing to send.
			return m, nil
		}
		mode := orchestrator.ModeVoiceRoundTrip
		if msg.View == ViewVoiceTools {
			mode = orchestrator.ModeTranscribeOnly
		}
		m.busy = true
		m.statusText = "Processing..."
		return m, m.submitCmd(orchestrator.Request{
			Mode:       mode,
			Clip:       msg.Clip,
			ReadScreen: m.readScreen,
		}, msg.View)

	case OutcomeMsg:
		return m.handleOutcome(msg)

	case SpeakOutcomeMsg:
		if msg.Outcome.Failed() {
			log.Warn().Str("error", msg.Outcome.Failure.Message).Msg("Auto-speak failed")
		}
		return m, nil

	case HealthTickMsg:
		return m, healthTickCmd()

	case ClearErrorMsg:
		m.errorMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	case "ctrl+c":
		m.playback.Stop()
		return m, tea.Quit

	case "enter":
		return m.submitTyped()

	case "tab":
		if m.view == ViewChat {
			if m.mode == orchestrator.ModeRAG {
				m.mode = orchestrator.ModeDirectChat
			} else {
				m.mode = orchestrator.ModeRAG
			}
		}
		return m, nil

	case "ctrl+t":
		if m.view == ViewChat {
			m.view = ViewVoiceTools
		} else {
			m.view = ViewChat
		}
		return m, nil

	case "ctrl+r":
		if m.busy {
			return m, nil
		}
		if m.recording {
			m.statusText = "Finalizing recording..."
			return m, m.stopRecordingCmd(m.view)
		}
		return m, m.startRecordingCmd()

	case "ctrl+a":
		m.autoSpeak = !m.autoSpeak
		return m, nil

	case "ctrl+o":
		m.readScreen = !m.readScreen
		return m, nil

	case "ctrl+p":
		if err := m.playback.TogglePause(); err != nil && err != audio.ErrNoPlayback {
			m.errorMessage = err.Error()
			return m, clearErrorCmd()
		}
		return m, nil

	case "ctrl+e":
		return m.replayLast()

	case "ctrl+x":
		m.playback.Stop()
		return m, nil

	case "ctrl+l":
		m.store.Clear()
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
		return m, nil
	}
}

// replayLast replays the newest turn that carries an audio reference. Bare
// filenames are server-hosted audio resolved through the client; anything
// else is a retained local file.
func (m Model) replayLast() (tea.Model, tea.Cmd) {
	turns := m.store.Turns()
	for i := len(turns) - 1; i >= 0; i-- {
		ref := turns[i].AudioRef
		if ref == "" {
			continue
		}
		if !strings.Contains(ref, "/") {
			ref = m.client.AudioURL(ref)
		}
		if err := m.playback.PlayRef(ref); err != nil {
			m.errorMessage = err.Error()
			return m, clearErrorCmd()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) submitTyped() (tea.Model, tea.Cmd) {
	if m.busy || m.recording || m.input == "" {
		return m, nil
	}

	text := m.input
	m.input = ""
	m.busy = true
	m.statusText = "Processing..."

	if m.view == ViewVoiceTools {
		return m, m.submitCmd(orchestrator.Request{
			Mode: orchestrator.ModeSynthesizeOnly,
			Text: text,
		}, ViewVoiceTools)
	}

	// The user turn is appended before the request so history reflects
	// what was asked even when the query fails.
	m.store.Append(history.NewTurn(history.SpeakerUser, text))

	return m, m.submitCmd(orchestrator.Request{
		Mode:       m.mode,
		Text:       text,
		ReadScreen: m.readScreen,
	}, ViewChat)
}

func (m Model) handleOutcome(msg OutcomeMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.statusText = "Ready"

	// A pending call always runs to completion and its result is recorded,
	// but outcomes for a view no longer shown are not surfaced: no audio,
	// no banner.
	stale := msg.View != m.view
	m.recordOutcome(msg)

	if stale {
		return m, nil
	}

	out := msg.Outcome
	switch out.Kind {

	case orchestrator.OutcomeFailed:
		m.errorMessage = out.Failure.Message
		return m, clearErrorCmd()

	case orchestrator.OutcomeAnsweredText:
		if m.autoSpeak {
			return m, m.speakCmd(out.Answer)
		}
		return m, nil

	case orchestrator.OutcomeAnsweredVoice:
		if len(out.Audio) > 0 {
			if err := m.playback.PlayEmbedded(out.Audio); err != nil {
				log.Warn().Err(err).Msg("Voice answer playback failed")
			}
		}
		return m, nil

	case orchestrator.OutcomeTranscribed:
		m.transcription = out.Transcription
		return m, nil

	case orchestrator.OutcomeSynthesized:
		if err := m.playback.PlayEmbedded(out.Audio); err != nil {
			m.errorMessage = err.Error()
			return m, clearErrorCmd()
		}
		return m, nil
	}

	return m, nil
}

// recordOutcome appends the chat turns an outcome produces, regardless of
// which view is showing.
func (m *Model) recordOutcome(msg OutcomeMsg) {
	out := msg.Outcome

	switch out.Kind {

	case orchestrator.OutcomeFailed:
		// Voice-tools failures surface in the banner only; chat failures
		// are reported inline.
		if msg.View == ViewChat {
			m.store.Append(history.NewTurn(history.SpeakerSystem, fmt.Sprintf("ERROR: %s", out.Failure.Message)))
		}

	case orchestrator.OutcomeAnsweredText:
		turn := history.NewTurn(history.SpeakerSystem, out.Answer)
		turn.Citations = out.Citations
		turn.LatencyMS = msg.Latency.Milliseconds()
		m.store.Append(turn)

	case orchestrator.OutcomeAnsweredVoice:
		user := history.NewTurn(history.SpeakerUser, out.Transcription)
		user.Voice = true
		m.store.Append(user)

		system := history.NewTurn(history.SpeakerSystem, out.Answer)
		system.Citations = out.Citations
		system.Voice = true
		system.LatencyMS = msg.Latency.Milliseconds()
		if len(out.Audio) > 0 {
			system.AudioRef = retainAudio(out.Audio)
		}
		m.store.Append(system)
	}
}

// retainAudio writes a spoken answer to a cache file so the turn can be
// replayed after the playback temp file is gone. Best-effort: on failure the
// turn simply carries no replay reference.
func retainAudio(data []byte) string {
	f, err := os.CreateTemp("", "assistant-replay-*.wav")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to retain answer audio")
		return ""
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		log.Warn().Err(err).Msg("Failed to retain answer audio")
		return ""
	}
	return f.Name()
}
