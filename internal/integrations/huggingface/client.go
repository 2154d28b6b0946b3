package huggingface

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is the OpenAI-compatible Hugging Face inference router.
	DefaultBaseURL = "https://router.huggingface.co/v1"

	DefaultTemperature float32 = 0.6
	DefaultMaxTokens           = 200
	DefaultTimeout             = 120 * time.Second

	maxErrorBody = 4096
)

// ErrMissingCredential is returned before any network activity when the
// client was built without an API token.
var ErrMissingCredential = errors.New("huggingface: no API token configured")

// ChatRequest is a single-turn completion request.
type ChatRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("huggingface: chat completion error: %d - %s", e.StatusCode, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Err
}

// chatAPI is the go-openai surface used by Client.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client talks to a hosted chat-completions endpoint with a token fixed at
// construction time.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	api        chatAPI
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client. An empty token is accepted so that a missing
// credential surfaces per request instead of at startup.
func NewClient(token string, opts ...Option) (*Client, error) {
	c := &Client{
		token:      strings.TrimSpace(token),
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("huggingface: invalid base URL %q", c.baseURL)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	hc := *c.httpClient
	hc.Transport = &captureTransport{base: c.httpClient.Transport}

	cfg := openai.DefaultConfig(c.token)
	cfg.BaseURL = strings.TrimRight(c.baseURL, "/")
	cfg.HTTPClient = &hc
	c.api = openai.NewClientWithConfig(cfg)
	return c, nil
}

// Configured reports whether a token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

// Generate sends the prompt as the only user message and returns the content
// of the first choice unchanged.
func (c *Client) Generate(ctx context.Context, req ChatRequest) (string, error) {
	if c.token == "" {
		return "", ErrMissingCredential
	}
	if strings.TrimSpace(req.Model) == "" {
		return "", errors.New("huggingface: model must not be empty")
	}
	if req.Prompt == "" {
		return "", errors.New("huggingface: prompt must not be empty")
	}
	if req.Temperature <= 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	capture := &errorBody{}
	ctx = context.WithValue(ctx, errorBodyKey{}, capture)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classify(err, capture.raw)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("huggingface: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// classify turns go-openai HTTP failures into *HTTPStatusError and wraps
// everything else. raw is the upstream body as received; the decoded error
// message is only used when it is empty.
func classify(err error, raw []byte) error {
	body := strings.TrimSpace(string(raw))
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		if body == "" {
			body = apiErr.Message
		}
		return &HTTPStatusError{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       truncate(body),
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		if body == "" {
			body = strings.TrimSpace(string(reqErr.Body))
		}
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &HTTPStatusError{
			StatusCode: reqErr.HTTPStatusCode,
			Body:       truncate(body),
			Err:        err,
		}
	}
	return fmt.Errorf("huggingface: request failed: %w", err)
}

// truncate caps s at maxErrorBody bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	n := maxErrorBody
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

type errorBodyKey struct{}

// errorBody holds the raw body of a non-2xx response for one request.
type errorBody struct {
	raw []byte
}

// captureTransport copies non-2xx response bodies into the errorBody carried
// by the request context, then hands an identical body on to the caller.
type captureTransport struct {
	base http.RoundTripper
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return resp, err
	}
	capture, ok := req.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok {
		return resp, nil
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	capture.raw = raw
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	if readErr != nil {
		return nil, fmt.Errorf("huggingface: read error body: %w", readErr)
	}
	return resp, nil
}
