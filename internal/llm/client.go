// HTTP client for the external text-completion service (Gemini-style
// generateContent API). The response text is treated as untrusted everywhere
// downstream; this package only moves bytes.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"

	// Low-moderate randomness, bounded output. Plan JSON for a week fits
	// comfortably under the token cap.
	temperature     = 0.4
	maxOutputTokens = 8192
)

// ErrEmptyCompletion means the service answered but produced no text.
// Terminal for the generation attempt; not worth an automatic retry.
var ErrEmptyCompletion = errors.New("completion service returned empty content")

// RequestError wraps transport and HTTP-status failures. Retryable by
// resubmitting the generation; the client itself never retries.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "completion request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error { return e.Err }

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt with the fixed system instruction and returns the
// raw completion text. No retries, no response parsing beyond the envelope.
func (c *Client) Complete(ctx context.Context, systemInstruction, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{Err: fmt.Errorf("status %d: %.200s", resp.StatusCode, string(body))}
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", &RequestError{Err: fmt.Errorf("malformed response envelope: %w", err)}
	}
	if genResp.Error != nil {
		return "", &RequestError{Err: fmt.Errorf("API error %d: %s", genResp.Error.Code, genResp.Error.Message)}
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	text := genResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
