package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/zjrosen/quillkey/internal/feature"
	"github.com/zjrosen/quillkey/internal/log"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient runs feature operations as single-turn Gemini prompts.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini API client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key not set", ErrUnauthorized)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Request implements Client.
func (g *GeminiClient) Request(ctx context.Context, kind feature.Kind, text string, params map[string]string) (string, error) {
	instruction, err := Instruction(kind, params)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	})
	if err != nil {
		log.Warn(log.CatAI, "Gemini request failed", "kind", kind.String(), "model", g.model, "error", err)
		return "", &NetworkError{Kind: kind, Err: err}
	}
	if resp == nil {
		return "", &NetworkError{Kind: kind, Err: ErrInvalidResponse}
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

// Instruction builds the system instruction for kind.
func Instruction(kind feature.Kind, params map[string]string) (string, error) {
	if err := checkParams(kind, params); err != nil {
		return "", err
	}

	const plain = " Reply with the resulting text only, without quotes or commentary."
	switch kind {
	case feature.GrammarCheck:
		return "Correct the grammar, spelling and punctuation of the user's text while keeping its meaning and language." + plain, nil
	case feature.ToneChange:
		return fmt.Sprintf("Rewrite the user's text in a %s tone, keeping its meaning and language.", strings.ToLower(params[feature.ParamTone])) + plain, nil
	case feature.AskAI:
		return "Treat the user's text as a request and write the text it asks for. If it is a question, answer it concisely." + plain, nil
	case feature.Translate:
		return fmt.Sprintf("Translate the user's text into %s.", params[feature.ParamLanguage]) + plain, nil
	case feature.Reply:
		return "The user's text is a message they received. Write a short, natural reply to it." + plain, nil
	case feature.ContinueText:
		return "Continue the user's text with one or two sentences in the same voice. Do not repeat the existing text." + plain, nil
	case feature.FindSynonyms:
		return "List up to eight synonyms for the user's word or phrase, one per line, without numbering or commentary.", nil
	default:
		return "", errors.New("no instruction for " + kind.String())
	}
}
