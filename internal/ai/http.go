package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/log"
)

// DefaultBaseURL is the keyboard API host.
const DefaultBaseURL = "https://kb-api.minailabs.io"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 60 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient calls the keyboard JSON API, one endpoint per feature.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for baseURL. Empty values use the defaults.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type operationRequest struct {
	Text     string `json:"text"`
	Tone     string `json:"tone,omitempty"`
	Language string `json:"language,omitempty"`
}

type operationResponse struct {
	Status string          `json:"status"`
	Input  string          `json:"input"`
	Output json.RawMessage `json:"output"`
}

// Request implements Client.
func (c *HTTPClient) Request(ctx context.Context, kind feature.Kind, text string, params map[string]string) (string, error) {
	if err := checkParams(kind, params); err != nil {
		return "", err
	}

	body, err := json.Marshal(operationRequest{
		Text:     text,
		Tone:     params[feature.ParamTone],
		Language: params[feature.ParamLanguage],
	})
	if err != nil {
		return "", &NetworkError{Kind: kind, Err: err}
	}

	endpoint := c.baseURL + "/" + kind.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Kind: kind, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn(log.CatAI, "Request failed", "kind", kind.String(), "error", err)
		return "", &NetworkError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	log.Debug(log.CatAI, "Response received",
		"kind", kind.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if err := statusError(resp.StatusCode); err != nil {
		return "", &NetworkError{Kind: kind, Err: err}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &NetworkError{Kind: kind, Err: err}
	}

	var decoded operationResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", &NetworkError{Kind: kind, Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}

	out, err := decodeOutput(decoded.Output)
	if err != nil {
		return "", &NetworkError{Kind: kind, Err: err}
	}
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

// decodeOutput accepts either a string or a list of strings (synonyms).
func decodeOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", fmt.Errorf("%w: output is neither string nor list", ErrInvalidResponse)
	}
	kept := list[:0]
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return ErrUnavailable
	case code != http.StatusOK:
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, code)
	}
	return nil
}
