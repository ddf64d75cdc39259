package genai

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

// Generator is the single call the FAQ flows make against the model.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// ErrRateLimited signals a 429 from the model API.
var ErrRateLimited = errors.New("model api rate limited")

// UpstreamError is any non-OK, non-429 answer from the model API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model api returned status %d", e.Status)
}

// Sampling parameters for FAQ generation.
const (
	temperature = 0.7
	topP        = 0.8
	topK        = 40
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiParts struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []*geminiParts `json:"parts"`
	Role  string         `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []*geminiContent        `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientWithHTTP lets tests point the client at a local server.
func NewClientWithHTTP(apiKey, model, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{
			{
				Parts: []*geminiParts{{Text: prompt}},
				Role:  "user",
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     temperature,
			TopP:            topP,
			TopK:            topK,
			MaxOutputTokens: maxOutputTokens,
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Status: 0, Body: err.Error()}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &UpstreamError{Status: res.StatusCode, Body: err.Error()}
	}

	if res.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if res.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: res.StatusCode, Body: string(resBody)}
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", &UpstreamError{Status: res.StatusCode, Body: string(resBody)}
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Status: res.StatusCode, Body: "empty candidates"}
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

var _ Generator = (*Client)(nil)
