package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Температура выше, чем обычно для структурированных ответов: от
// тревел-ассистента ожидается живой текст с вариантами маршрутов.
const chatTemperature = 0.7

// OpenRouterClient calls the OpenRouter OpenAI-compatible chat completions API.
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	model      string
	referer    string
	appTitle   string
	maxTokens  int
	httpClient *http.Client
}

type openRouterRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type openRouterResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenRouterClient создает клиент OpenRouter с заданными параметрами.
func NewOpenRouterClient(apiKey, baseURL, model, referer, appTitle string, timeout time.Duration, maxTokens int) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		referer:   referer,
		appTitle:  appTitle,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Chat отправляет историю диалога в OpenRouter и возвращает текст ответа
// ассистента и сырое тело ответа API.
func (c *OpenRouterClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, errors.New("openrouter api key is missing")
	}

	payload, err := json.Marshal(openRouterRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   resolveMaxTokens(c.maxTokens),
	})
	if err != nil {
		return "", nil, err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}

	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	// OpenRouter использует эти заголовки для атрибуции приложения.
	if c.referer != "" {
		request.Header.Set("HTTP-Referer", c.referer)
	}
	if c.appTitle != "" {
		request.Header.Set("X-Title", c.appTitle)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr openRouterResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
			return "", body, fmt.Errorf("openrouter api error: %s", apiErr.Error.Message)
		}
		return "", body, fmt.Errorf("openrouter api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed openRouterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", body, err
	}

	if len(parsed.Choices) == 0 {
		return "", body, errors.New("openrouter response missing choices")
	}

	return parsed.Choices[0].Message.Content, body, nil
}
