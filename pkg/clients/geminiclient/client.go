package geminiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// fallbackReplies is returned by GenerateSmartReplies when no API key is
// configured
var fallbackReplies = []string{
	"Thanks for your quick response!",
	"What's the best contact number?",
	"Can you confirm the location?",
}

// Client calls the Gemini generateContent REST API. A client with an empty
// API key is valid and degrades every call to its deterministic fallback,
// so callers never need to special-case missing configuration.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Gemini client. apiKey may be empty; model defaults to
// gemini-2.5-flash.
func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server
func NewClientWithBaseURL(apiKey, model, baseURL string, logger *zap.Logger) *Client {
	c := NewClient(apiKey, model, logger)
	c.baseURL = baseURL
	return c
}

// Configured reports whether an API key is available
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateEventDescription generates a short blood drive description for the
// given theme. It never returns an error: when the client is unconfigured it
// returns a templated mock description, and on call failure it returns a
// templated apology.
func (c *Client) GenerateEventDescription(ctx context.Context, theme string) string {
	if !c.Configured() {
		c.logger.Warn("Gemini API key is not configured, returning mock description")
		return fmt.Sprintf(`A fun and engaging community blood drive with a %q theme. Come join us to save lives! Your contribution is vital.`, theme)
	}

	prompt := fmt.Sprintf(`Generate a creative and engaging description for a blood donation drive with the theme: %q. The description should be short (2-3 sentences), inspiring, and encourage people to participate. Do not include placeholders for date or location.`, theme)

	text, err := c.generateContent(ctx, prompt, nil)
	if err != nil {
		c.logger.Error("Failed to generate event description", zap.Error(err), zap.String("theme", theme))
		return fmt.Sprintf("An error occurred while generating a description for %q. Please try again later.", theme)
	}
	return text
}

// repliesSchema constrains the smart replies response to a JSON object with
// a string array under "replies"
var repliesSchema = json.RawMessage(`{"type":"OBJECT","properties":{"replies":{"type":"ARRAY","items":{"type":"STRING"}}}}`)

// GenerateSmartReplies asks the model for up to three short reply
// suggestions given serialized chat history lines. An unconfigured client
// returns a fixed fallback list; a call or parse failure returns an empty
// slice along with the error so the chat layer can surface a soft warning.
func (c *Client) GenerateSmartReplies(ctx context.Context, history []string, requesterName, donorName string) ([]string, error) {
	if !c.Configured() {
		c.logger.Warn("Gemini API key is not configured, returning mock replies")
		out := make([]string, len(fallbackReplies))
		copy(out, fallbackReplies)
		return out, nil
	}

	prompt := fmt.Sprintf(`The following is a chat between a blood requestor (%s) and a potential donor (%s). The last message was from the donor. Based on the context, generate exactly 3 short, helpful, and professional smart replies for the requester.

Chat History:
%s
`, requesterName, donorName, strings.Join(history, "\n"))

	text, err := c.generateContent(ctx, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   repliesSchema,
	})
	if err != nil {
		return []string{}, fmt.Errorf("failed to generate smart replies: %w", err)
	}

	var parsed struct {
		Replies []string `json:"replies"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		c.logger.Error("Smart replies response was not valid JSON", zap.Error(err))
		return []string{}, fmt.Errorf("failed to parse smart replies response: %w", err)
	}
	if parsed.Replies == nil {
		return []string{}, nil
	}
	return parsed.Replies, nil
}

// generateContent performs one generateContent call and returns the text of
// the first candidate part
func (c *Client) generateContent(ctx context.Context, prompt string, cfg *generationConfig) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
