package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestDecodeErrorDetailEnvelope(t *testing.T) {
	err := decodeError(500, []byte(`{"detail":"model unavailable"}`))
	assert.Equal(t, "model unavailable", err.Message)
	assert.Equal(t, 500, err.Status)
	assert.Empty(t, err.Code)
}

func TestDecodeErrorStructuredEnvelope(t *testing.T) {
	err := decodeError(503, []byte(`{"error":{"code":"MODEL_UNAVAILABLE","message":"still loading"}}`))
	assert.Equal(t, "MODEL_UNAVAILABLE", err.Code)
	assert.Equal(t, "still loading", err.Message)
}

func TestDecodeErrorFallsBackToStatusText(t *testing.T) {
	err := decodeError(500, []byte(`<html>oops</html>`))
	assert.Equal(t, "Internal Server Error", err.Message)

	err = decodeError(404, nil)
	assert.Equal(t, "Not Found", err.Message)
}

func TestAskSendsContractFields(t *testing.T) {
	var got map[string]any
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ask", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(AskResponse{Answer: "42", Citations: []string{"doc.pdf#1"}, Model: "m"})
	}))
	defer server.Close()

	resp, err := client.Ask(context.Background(), "meaning of life", true, "screen text")
	require.NoError(t, err)

	assert.Equal(t, "meaning of life", got["query"])
	assert.Equal(t, true, got["read_screen"])
	assert.Equal(t, "screen text", got["screen_context"])
	assert.Equal(t, "42", resp.Answer)
	assert.Equal(t, []string{"doc.pdf#1"}, resp.Citations)
}

func TestAskSurfacesDetailError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"model unavailable"}`))
	}))
	defer server.Close()

	_, err := client.Ask(context.Background(), "q", false, "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "model unavailable", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestAskVoiceUploadsMultipart(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ask_voice", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "recording.wav", header.Filename)
		assert.Equal(t, []byte("clip bytes"), data)
		assert.Equal(t, "true", r.FormValue("read_screen"))

		json.NewEncoder(w).Encode(VoiceQueryResponse{Transcription: "hi", Answer: "hello"})
	}))
	defer server.Close()

	resp, err := client.AskVoice(context.Background(), []byte("clip bytes"), true)
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Transcription)
	assert.Equal(t, "hello", resp.Answer)
}

func TestSynthesizeReturnsRawBytes(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/synthesize", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "read me", body["text"])

		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte{0x52, 0x49, 0x46, 0x46})
	}))
	defer server.Close()

	audio, err := client.Synthesize(context.Background(), "read me")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x52, 0x49, 0x46, 0x46}, audio)
}

func TestMalformedJSONResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{truncated`))
	}))
	defer server.Close()

	_, err := client.Transcribe(context.Background(), []byte("clip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestHealthParsesReport(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{
			"status": "ok",
			"version": "1.2.0",
			"models": {"llm": "sarvam-1", "llm_loaded": true, "stt": "whisper", "stt_loaded": true},
			"vector_store": {"connected": true, "document_count": 4, "chunk_count": 120},
			"gpu": {"vram_used_mb": 2048, "vram_total_mb": 8192, "device": "cuda:0"}
		}`))
	}))
	defer server.Close()

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.Models.LLMLoaded)
	assert.Equal(t, 4, status.VectorStore.DocumentCount)
	assert.Equal(t, "cuda:0", status.GPU.Device)
}

func TestDocumentLifecycle(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/documents":
			json.NewEncoder(w).Encode(DocumentListResponse{
				Documents: []Document{{DocID: "d1", Filename: "policy.pdf", Chunks: 12}},
				Total:     1,
			})
		case r.Method == http.MethodPost && r.URL.Path == "/upload":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			json.NewEncoder(w).Encode(UploadResponse{DocID: "d2", Filename: header.Filename, Status: "indexed"})
		case r.Method == http.MethodDelete && r.URL.Path == "/document/d1":
			json.NewEncoder(w).Encode(DeleteResponse{Success: true, DocID: "d1", ChunksRemoved: 12})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	list, err := client.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "policy.pdf", list.Documents[0].Filename)

	uploaded, err := client.Upload(context.Background(), "notes.pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", uploaded.Filename)

	deleted, err := client.DeleteDocument(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, deleted.Success)
	assert.Equal(t, 12, deleted.ChunksRemoved)
}

func TestAudioURL(t *testing.T) {
	client := NewClient("http://backend:8000/", time.Second)
	assert.Equal(t, "http://backend:8000/audio/answer.wav", client.AudioURL("answer.wav"))
}
