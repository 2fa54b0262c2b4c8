package imagegen

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
)

const (
	generationsPath = "/v1/images/generations"
	imageSize       = "1024x1024"
)

type generationRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// CoverPrompt builds the prompt sent to the image API for a book.
func CoverPrompt(name, author string) string {
	return fmt.Sprintf("Book cover for %s by %s", name, author)
}

// GenerateCover requests a single cover image for the given book and
// returns its URL.
func (c *Client) GenerateCover(ctx context.Context, name, author string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	prompt := CoverPrompt(name, author)
	body, err := json.Marshal(generationRequest{
		Prompt: prompt,
		N:      1,
		Size:   imageSize,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("requesting cover image", "prompt", prompt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation failed: status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var genResp generationResponse
	if err := json.UnmarshalRead(resp.Body, &genResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(genResp.Data) == 0 || genResp.Data[0].URL == "" {
		return "", fmt.Errorf("generation returned no image")
	}

	return genResp.Data[0].URL, nil
}
