package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListDocuments fetches all ingested documents: GET /documents.
func (c *Client) ListDocuments(ctx context.Context) (*DocumentListResponse, error) {
	var resp DocumentListResponse
	if err := c.getJSON(ctx, "/documents", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload ingests a document: POST /upload (multipart).
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*UploadResponse, error) {
	body, err := c.postMultipart(ctx, "/upload", filename, data, nil)
	if err != nil {
		return nil, err
	}

	var resp UploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from /upload: %w", err)
	}
	return &resp, nil
}

// DeleteDocument removes a document and its chunks: DELETE /document/{id}.
func (c *Client) DeleteDocument(ctx context.Context, docID string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.delete(ctx, "/document/"+docID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
