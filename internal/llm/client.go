// Package llm wraps the third-party completion APIs the roadmap generator
// can call.  The provider is an explicit configuration value passed in at
// construction; there is no process-global provider state.  Calls are plain
// request/response with no retry loop: a failed completion is a terminal
// error the caller surfaces to the user.
package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"

    "github.com/skillpath/skillpath/internal/config"
)

// ErrNotConfigured is returned when AI generation is requested but no API
// key is present.
var ErrNotConfigured = errors.New("llm provider not configured")

// ErrEmptyCompletion is returned when the provider answered 200 but the
// response carried no text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Default endpoints per provider, overridable through LLM_BASE_URL.
const (
    openAIBase    = "https://api.openai.com"
    anthropicBase = "https://api.anthropic.com"
    geminiBase    = "https://generativelanguage.googleapis.com"
)

// Client issues completion requests against the configured provider.
type Client struct {
    cfg  config.LLMConfig
    http *http.Client
}

// New builds a client for the given provider configuration.  The zero
// http.Client is intentional: timeouts come from the request context.
func New(cfg config.LLMConfig) *Client {
    return &Client{cfg: cfg, http: &http.Client{}}
}

// Complete sends the prompt to the configured provider and returns the raw
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
    if c.cfg.APIKey == "" {
        return "", ErrNotConfigured
    }
    switch c.cfg.Provider {
    case "anthropic":
        return c.completeAnthropic(ctx, prompt)
    case "gemini":
        return c.completeGemini(ctx, prompt)
    default:
        return c.completeOpenAI(ctx, prompt)
    }
}

func (c *Client) base(def string) string {
    if c.cfg.BaseURL != "" {
        return c.cfg.BaseURL
    }
    return def
}

func (c *Client) completeOpenAI(ctx context.Context, prompt string) (string, error) {
    body := map[string]any{
        "model": c.cfg.Model,
        "messages": []map[string]string{
            {"role": "user", "content": prompt},
        },
    }
    var out struct {
        Choices []struct {
            Message struct {
                Content string `json:"content"`
            } `json:"message"`
        } `json:"choices"`
    }
    err := c.post(ctx, c.base(openAIBase)+"/v1/chat/completions", body, map[string]string{
        "Authorization": "Bearer " + c.cfg.APIKey,
    }, &out)
    if err != nil {
        return "", err
    }
    if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
        return "", ErrEmptyCompletion
    }
    return out.Choices[0].Message.Content, nil
}

func (c *Client) completeAnthropic(ctx context.Context, prompt string) (string, error) {
    body := map[string]any{
        "model":      c.cfg.Model,
        "max_tokens": 4096,
        "messages": []map[string]string{
            {"role": "user", "content": prompt},
        },
    }
    var out struct {
        Content []struct {
            Text string `json:"text"`
        } `json:"content"`
    }
    err := c.post(ctx, c.base(anthropicBase)+"/v1/messages", body, map[string]string{
        "x-api-key":         c.cfg.APIKey,
        "anthropic-version": "2023-06-01",
    }, &out)
    if err != nil {
        return "", err
    }
    if len(out.Content) == 0 || out.Content[0].Text == "" {
        return "", ErrEmptyCompletion
    }
    return out.Content[0].Text, nil
}

func (c *Client) completeGemini(ctx context.Context, prompt string) (string, error) {
    body := map[string]any{
        "contents": []map[string]any{
            {"parts": []map[string]string{{"text": prompt}}},
        },
    }
    var out struct {
        Candidates []struct {
            Content struct {
                Parts []struct {
                    Text string `json:"text"`
                } `json:"parts"`
            } `json:"content"`
        } `json:"candidates"`
    }
    url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
        c.base(geminiBase), c.cfg.Model, c.cfg.APIKey)
    if err := c.post(ctx, url, body, nil, &out); err != nil {
        return "", err
    }
    if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 ||
        out.Candidates[0].Content.Parts[0].Text == "" {
        return "", ErrEmptyCompletion
    }
    return out.Candidates[0].Content.Parts[0].Text, nil
}

// post sends a JSON body, checks the HTTP status and decodes the response.
func (c *Client) post(ctx context.Context, url string, body any, headers map[string]string, out any) error {
    raw, err := json.Marshal(body)
    if err != nil {
        return err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
    if err != nil {
        return err
    }
    req.Header.Set("Content-Type", "application/json")
    for k, v := range headers {
        req.Header.Set(k, v)
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return err
    }
    defer func() { _ = resp.Body.Close() }()

    data, err := io.ReadAll(resp.Body)
    if err != nil {
        return err
    }
    if resp.StatusCode != http.StatusOK {
        return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(data, 200))
    }
    return json.Unmarshal(data, out)
}

func truncate(b []byte, n int) string {
    if len(b) <= n {
        return string(b)
    }
    return string(b[:n]) + "..."
}
