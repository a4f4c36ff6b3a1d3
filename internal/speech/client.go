package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls a JSON text:synthesize endpoint that returns base64 audio.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Synthesizer = (*Client)(nil)

// NewClient creates a synthesis client for the given endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to MP3 bytes using the configured voice.
func (c *Client) Synthesize(ctx context.Context, text string, voice VoiceConfig) ([]byte, error) {
	if len(text) > MaxInputChars {
		return nil, fmt.Errorf("speech: input exceeds %d characters", MaxInputChars)
	}

	var body synthesizeRequest
	body.Input.Text = text
	body.Voice.LanguageCode = voice.LanguageCode
	body.Voice.Name = voice.Name
	body.AudioConfig.AudioEncoding = "MP3"
	body.AudioConfig.SpeakingRate = voice.SpeakingRate

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("speech: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/text:synthesize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("speech: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: call: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech: status %d", resp.StatusCode)
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("speech: decode response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("speech: decode audio: %w", err)
	}
	return audio, nil
}
