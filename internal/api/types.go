package api

// Wire types for the assistant backend. The backend returns flat JSON with
// no envelope; one operation (synthesize) returns raw audio bytes instead.

// AskResponse is the RAG-grounded answer from POST /ask.
type AskResponse struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
}

// ChatResponse is the direct LLM reply from POST /chat.
type ChatResponse struct {
	Response  string   `json:"response"`
	Model     string   `json:"model"`
	Citations []string `json:"citations"`
}

// VoiceQueryResponse is the full voice round-trip from POST /ask_voice.
type VoiceQueryResponse struct {
	Transcription string   `json:"transcription"`
	Answer        string   `json:"answer"`
	Citations     []string `json:"citations"`
	AudioBase64   string   `json:"audio_base64"`
	Model         string   `json:"model"`
}

// TranscribeResponse is the standalone STT result from POST /transcribe.
type TranscribeResponse struct {
	Status        string `json:"status"`
	Transcription string `json:"transcription"`
}

// HealthStatus is the backend liveness report from GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Models  struct {
		LLM            string `json:"llm"`
		LLMLoaded      bool   `json:"llm_loaded"`
		LLMBackend     string `json:"llm_backend"`
		STT            string `json:"stt"`
		STTLoaded      bool   `json:"stt_loaded"`
		TTS            string `json:"tts"`
		TTSLoaded      bool   `json:"tts_loaded"`
		Embedder       string `json:"embedder"`
		EmbedderLoaded bool   `json:"embedder_loaded"`
	} `json:"models"`
	VectorStore struct {
		Connected     bool `json:"connected"`
		DocumentCount int  `json:"document_count"`
		ChunkCount    int  `json:"chunk_count"`
	} `json:"vector_store"`
	GPU struct {
		VRAMUsedMB  int    `json:"vram_used_mb"`
		VRAMTotalMB int    `json:"vram_total_mb"`
		Device      string `json:"device"`
	} `json:"gpu"`
}

// Document describes one ingested document.
type Document struct {
	DocID             string   `json:"doc_id"`
	Filename          string   `json:"filename"`
	Chunks            int      `json:"chunks"`
	UploadedAt        string   `json:"uploaded_at"`
	DetectedLanguages []string `json:"detected_languages"`
}

// DocumentListResponse is the listing from GET /documents.
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// UploadResponse is the ingestion result from POST /upload.
type UploadResponse struct {
	DocID             string   `json:"doc_id"`
	Filename          string   `json:"filename"`
	Chunks            int      `json:"chunks"`
	DetectedLanguages []string `json:"detected_languages"`
	Status            string   `json:"status"`
}

// DeleteResponse is the removal result from DELETE /document/{id}.
type DeleteResponse struct {
	Success       bool   `json:"success"`
	DocID         string `json:"doc_id"`
	ChunksRemoved int    `json:"chunks_removed"`
}
