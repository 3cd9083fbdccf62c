package orchestrator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/user/assistant-console/internal/api"
)

// Backend is the slice of the API client the orchestrator routes to.
type Backend interface {
	Ask(ctx context.Context, query string, readScreen bool, screenContext string) (*api.AskResponse, error)
	Chat(ctx context.Context, prompt string, readScreen bool, screenContext string) (*api.ChatResponse, error)
	AskVoice(ctx context.Context, clip []byte, readScreen bool) (*api.VoiceQueryResponse, error)
	Transcribe(ctx context.Context, clip []byte) (*api.TranscribeResponse, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Orchestrator routes a query through exactly one backend operation per
// submission and normalizes the result. It performs no retries, no
// deduplication and no cancellation; single-flight discipline is the
// caller's responsibility.
type Orchestrator struct {
	backend Backend
}

func New(backend Backend) *Orchestrator {
	return &Orchestrator{backend: backend}
}

const validationCode = "VALIDATION_ERROR"

// Submit issues the backend call selected by the request mode. Invalid
// requests are rejected before any transport call.
func (o *Orchestrator) Submit(ctx context.Context, req Request) Outcome {
	if err := validate(req); err != nil {
		log.Warn().Str("mode", req.Mode.String()).Err(err).Msg("Rejected query before dispatch")
		return Outcome{
			Kind:    OutcomeFailed,
			Failure: &Failure{Code: validationCode, Message: err.Error()},
		}
	}

	log.Debug().
		Str("mode", req.Mode.String()).
		Bool("read_screen", req.ReadScreen).
		Msg("Submitting query")

	switch req.Mode {
	case ModeRAG:
		resp, err := o.backend.Ask(ctx, req.Text, req.ReadScreen, req.ScreenContext)
		if err != nil {
			return o.fail(req.Mode, err)
		}
		return Outcome{
			Kind:      OutcomeAnsweredText,
			Answer:    resp.Answer,
			Citations: resp.Citations,
			Model:     resp.Model,
		}

	case ModeDirectChat:
		resp, err := o.backend.Chat(ctx, req.Text, req.ReadScreen, req.ScreenContext)
		if err != nil {
			return o.fail(req.Mode, err)
		}
		// Direct chat carries no document grounding.
		return Outcome{
			Kind:   OutcomeAnsweredText,
			Answer: resp.Response,
			Model:  resp.Model,
		}

	case ModeVoiceRoundTrip:
		resp, err := o.backend.AskVoice(ctx, req.Clip.Data, req.ReadScreen)
		if err != nil {
			return o.fail(req.Mode, err)
		}
		var speech []byte
		if resp.AudioBase64 != "" {
			speech, err = base64.StdEncoding.DecodeString(resp.AudioBase64)
			if err != nil {
				return o.fail(req.Mode, fmt.Errorf("malformed audio payload: %w", err))
			}
		}
		return Outcome{
			Kind:          OutcomeAnsweredVoice,
			Answer:        resp.Answer,
			Transcription: resp.Transcription,
			Citations:     resp.Citations,
			Audio:         speech,
			Model:         resp.Model,
		}

	case ModeTranscribeOnly:
		resp, err := o.backend.Transcribe(ctx, req.Clip.Data)
		if err != nil {
			return o.fail(req.Mode, err)
		}
		return Outcome{
			Kind:          OutcomeTranscribed,
			Transcription: resp.Transcription,
		}

	case ModeSynthesizeOnly:
		speech, err := o.backend.Synthesize(ctx, req.Text)
		if err != nil {
			return o.fail(req.Mode, err)
		}
		return Outcome{
			Kind:  OutcomeSynthesized,
			Audio: speech,
		}

	default:
		return Outcome{
			Kind:    OutcomeFailed,
			Failure: &Failure{Code: validationCode, Message: fmt.Sprintf("unsupported mode %d", req.Mode)},
		}
	}
}

func validate(req Request) error {
	if req.Mode.TakesClip() {
		if req.Clip == nil || len(req.Clip.Data) == 0 {
			return fmt.Errorf("%s query requires a recorded clip", req.Mode)
		}
		return nil
	}
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%s query requires non-empty text", req.Mode)
	}
	return nil
}

func (o *Orchestrator) fail(mode Mode, err error) Outcome {
	failure := &Failure{Message: err.Error()}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		failure.Code = apiErr.Code
		failure.Message = apiErr.Message
	}

	log.Warn().
		Str("mode", mode.String()).
		Str("error_code", failure.Code).
		Err(err).
		Msg("Query failed")

	return Outcome{Kind: OutcomeFailed, Failure: failure}
}
