package chatbotControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"
	groqModel      = "llama-3.1-8b-instant"
)

// Completer produces a short natural-language reply. The production
// implementation calls Groq; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type GroqClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewGroqClient() *GroqClient {
	apiURL := os.Getenv("GROQ_API_URL")
	if apiURL == "" {
		apiURL = defaultGroqURL
	}
	return &GroqClient{
		apiKey:     os.Getenv("GROQ_API_KEY"),
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *GroqClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	payload := map[string]interface{}{
		"model": groqModel,
		"messages": []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		"temperature": 0.3, // keep replies consistent and short
		"max_tokens":  100,
		"top_p":       1,
		"stream":      false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Groq: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API error (%d): %s", resp.StatusCode, string(body))
	}

	var groqResp groqResponse
	if err := json.Unmarshal(body, &groqResp); err != nil {
		return "", fmt.Errorf("failed to parse Groq response: %v", err)
	}
	if groqResp.Error != nil {
		return "", fmt.Errorf("groq error: %s", groqResp.Error.Message)
	}
	if len(groqResp.Choices) == 0 || groqResp.Choices[0].Message.Content == "" {
		return "I'm sorry, I couldn't process your request. Please try again.", nil
	}

	return groqResp.Choices[0].Message.Content, nil
}
