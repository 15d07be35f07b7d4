package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-legalaid-be/pkg/emotion"
)

const defaultModel = "j-hartmann/emotion-english-distilroberta-base"

// Classifier calls the HuggingFace inference API for text classification.
type Classifier struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ emotion.Classifier = &Classifier{}

func NewClassifier(apiKey, baseURL, model string) *Classifier {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models"
	}
	if model == "" {
		model = defaultModel
	}
	return &Classifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// The API returns one ranked label list per input.
type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("emotion request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("emotion error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ranked [][]scoredLabel
	if err := json.Unmarshal(bodyBytes, &ranked); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(ranked) == 0 || len(ranked[0]) == 0 {
		return "", fmt.Errorf("emotion response contained no labels")
	}

	best := ranked[0][0]
	for _, l := range ranked[0][1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	return best.Label, nil
}
