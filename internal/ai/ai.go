// Package ai is the boundary to the remote text operations behind each
// feature. Providers are interchangeable behind Client; the keyboard core
// treats every call as an idempotent request that eventually succeeds or
// fails.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/quillkey/internal/feature"
)

var (
	ErrUnauthorized    = errors.New("ai unauthorized")
	ErrUnavailable     = errors.New("ai unavailable")
	ErrRateLimited     = errors.New("ai rate limited")
	ErrInvalidResponse = errors.New("ai invalid response")
	ErrEmptyOutput     = errors.New("ai returned no output")
	ErrMissingParam    = errors.New("missing required parameter")
	ErrUnknownProvider = errors.New("unknown ai provider")
)

// Client performs one feature operation on text.
type Client interface {
	Request(ctx context.Context, kind feature.Kind, text string, params map[string]string) (string, error)
}

// NetworkError wraps a transport, status or decoding failure for one feature.
type NetworkError struct {
	Kind feature.Kind
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Kind, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, kind feature.Kind, text string, params map[string]string) (string, error)

// Request implements Client.
func (f ClientFunc) Request(ctx context.Context, kind feature.Kind, text string, params map[string]string) (string, error) {
	return f(ctx, kind, text, params)
}

// Provider names accepted by New.
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// Options selects and configures a provider.
type Options struct {
	Provider     string
	BaseURL      string
	Timeout      time.Duration
	GeminiAPIKey string
	GeminiModel  string
}

// New builds the provider named by opts.Provider.
func New(ctx context.Context, opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderHTTP:
		return NewHTTPClient(opts.BaseURL, opts.Timeout), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, opts.GeminiAPIKey, opts.GeminiModel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// checkParams verifies kind's required parameter is present.
func checkParams(kind feature.Kind, params map[string]string) error {
	key := kind.RequiredParam()
	if key == "" {
		return nil
	}
	if strings.TrimSpace(params[key]) == "" {
		return fmt.Errorf("%w: %s needs %q", ErrMissingParam, kind, key)
	}
	return nil
}
