// Package parse implements the Parser interface against a remote
// document-parsing API. The service does the OCR and layout work; this
// client only uploads the file, starts a parse job, and polls the job
// until it reaches a terminal status. Retry and backoff are out of
// scope — failures are wrapped and propagated to the caller.
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/tabpipe/core"
)

const (
	defaultBaseURL      = "https://api.tensorlake.ai/documents/v1"
	defaultTimeout      = 60 * time.Second
	defaultPollInterval = 2 * time.Second
)

// Client talks to the document parsing service.
type Client struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	client       *http.Client
}

// Options configure a Client beyond its API key. Zero values fall back
// to the hosted service defaults.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
}

// New creates a Client for the given API key.
func New(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	return &Client{
		apiKey:       apiKey,
		baseURL:      opts.BaseURL,
		pollInterval: opts.PollInterval,
		client:       &http.Client{Timeout: opts.Timeout},
	}
}

// uploadResponse is the service's reply to a file upload.
type uploadResponse struct {
	FileID string `json:"file_id"`
}

// parseRequest creates a parse job. Page chunking and HTML table output
// are fixed: the splitter depends on per-page chunks with tables embedded
// as HTML.
type parseRequest struct {
	FileID                 string `json:"file_id"`
	ChunkingStrategy       string `json:"chunking_strategy"`
	TableOutputMode        string `json:"table_output_mode"`
	SignatureDetection     bool   `json:"signature_detection"`
	DisableLayoutDetection bool   `json:"disable_layout_detection"`
}

// createParseResponse is the service's reply to parse-job creation.
type createParseResponse struct {
	ParseID string `json:"parse_id"`
}

// parseStatusResponse is the service's reply when polling a parse job.
type parseStatusResponse struct {
	Status string `json:"status"`
	Chunks []struct {
		PageNumber int    `json:"page_number"`
		Content    string `json:"content"`
	} `json:"chunks"`
}

// Upload stages the file with the service and returns its file ID.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload form: %w", err)
	}

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, "/files", &body, mw.FormDataContentType(), &resp); err != nil {
		return "", fmt.Errorf("uploading %s: %w", path, err)
	}
	if resp.FileID == "" {
		return "", fmt.Errorf("upload response missing file_id")
	}
	return resp.FileID, nil
}

// Parse starts a parse job for the uploaded file and polls it until the
// service reports a terminal status. The result's status is returned
// as-is; deciding whether it allows processing is the caller's job.
func (c *Client) Parse(ctx context.Context, fileID string) (*core.ParseResult, error) {
	req := parseRequest{
		FileID:                 fileID,
		ChunkingStrategy:       "page",
		TableOutputMode:        "html",
		SignatureDetection:     false,
		DisableLayoutDetection: true,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling parse request: %w", err)
	}

	var created createParseResponse
	if err := c.do(ctx, http.MethodPost, "/parse", bytes.NewReader(payload), "application/json", &created); err != nil {
		return nil, fmt.Errorf("creating parse job: %w", err)
	}
	if created.ParseID == "" {
		return nil, fmt.Errorf("parse response missing parse_id")
	}

	for {
		var status parseStatusResponse
		if err := c.do(ctx, http.MethodGet, "/parse/"+created.ParseID, nil, "", &status); err != nil {
			return nil, fmt.Errorf("polling parse job %s: %w", created.ParseID, err)
		}

		if terminal(status.Status) {
			result := &core.ParseResult{Status: status.Status}
			for _, chunk := range status.Chunks {
				result.Chunks = append(result.Chunks, core.PageChunk{
					PageNumber: chunk.PageNumber,
					Content:    chunk.Content,
				})
			}
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// terminal reports whether a parse status will not change anymore.
func terminal(status string) bool {
	return status != "pending" && status != "processing"
}

// do performs one authenticated request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling parsing service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("parsing service returned %d: %s", resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
