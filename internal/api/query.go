package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

type askRequest struct {
	Query         string `json:"query"`
	ReadScreen    bool   `json:"read_screen"`
	ScreenContext string `json:"screen_context,omitempty"`
}

type chatRequest struct {
	Prompt        string   `json:"prompt"`
	MaxTokens     *int     `json:"max_tokens,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	ReadScreen    bool     `json:"read_screen"`
	ScreenContext string   `json:"screen_context,omitempty"`
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// Ask runs a RAG-grounded query: POST /ask.
func (c *Client) Ask(ctx context.Context, query string, readScreen bool, screenContext string) (*AskResponse, error) {
	body, err := c.postJSON(ctx, "/ask", askRequest{
		Query:         query,
		ReadScreen:    readScreen,
		ScreenContext: screenContext,
	})
	if err != nil {
		return nil, err
	}

	var resp AskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from /ask: %w", err)
	}
	return &resp, nil
}

// Chat runs a direct LLM prompt with no document grounding: POST /chat.
func (c *Client) Chat(ctx context.Context, prompt string, readScreen bool, screenContext string) (*ChatResponse, error) {
	body, err := c.postJSON(ctx, "/chat", chatRequest{
		Prompt:        prompt,
		ReadScreen:    readScreen,
		ScreenContext: screenContext,
	})
	if err != nil {
		return nil, err
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from /chat: %w", err)
	}
	return &resp, nil
}

// AskVoice runs the full voice pipeline on a recorded clip: POST /ask_voice.
func (c *Client) AskVoice(ctx context.Context, clip []byte, readScreen bool) (*VoiceQueryResponse, error) {
	log.Debug().
		Int("clip_bytes", len(clip)).
		Bool("read_screen", readScreen).
		Msg("Sending voice query")

	body, err := c.postMultipart(ctx, "/ask_voice", "recording.wav", clip, map[string]string{
		"read_screen": strconv.FormatBool(readScreen),
	})
	if err != nil {
		return nil, err
	}

	var resp VoiceQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from /ask_voice: %w", err)
	}
	return &resp, nil
}

// Transcribe runs standalone speech-to-text on a clip: POST /transcribe.
func (c *Client) Transcribe(ctx context.Context, clip []byte) (*TranscribeResponse, error) {
	body, err := c.postMultipart(ctx, "/transcribe", "recording.wav", clip, nil)
	if err != nil {
		return nil, err
	}

	var resp TranscribeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from /transcribe: %w", err)
	}
	return &resp, nil
}

// Synthesize runs standalone text-to-speech: POST /synthesize. The response
// is raw audio bytes, not JSON.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	audio, err := c.postJSON(ctx, "/synthesize", synthesizeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("audio_bytes", len(audio)).Msg("Received synthesized audio")
	return audio, nil
}

// Health fetches the backend liveness report: GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var resp HealthStatus
	if err := c.getJSON(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
