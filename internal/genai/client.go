package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adforge/internal/domain"
	"adforge/internal/infra"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-pro"
	defaultTimeout = 60 * time.Second
)

// systemInstruction is the fixed safety/style preamble sent with every
// structured generation request. The schema is appended per call.
const systemInstruction = `You are an experienced UGC ad creator and copywriter.
Respond ONLY with valid JSON matching the schema below.
No explanations, no markdown code blocks, just pure JSON.

Schema:
%s

IMPORTANT:
- No medical claims
- No illegal or misleading statements
- No hate speech or discriminatory content
- Write all texts in the language requested in the prompt`

// Options controls how the generation client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client calls the external text-generation service and returns parsed,
// schema-shaped values. Failures are classified into the domain error
// taxonomy so callers can decide on retries.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient configures the generation client with defaults for base URL,
// model and HTTP timeout.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// Model reports the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateJSON sends the prompt with the fixed system instruction and the
// schema description, strips any code-fence wrapper from the response and
// unmarshals it into out. Parse failures surface domain.ErrInvalidResponse;
// safety blocks and quota exhaustion surface their own fatal classes.
func (c *Client) GenerateJSON(ctx context.Context, prompt, schema string, out any) error {
	reqBody := generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: fmt.Sprintf(systemInstruction, schema)},
				{Text: prompt},
			},
		}},
		GenerationConfig: &generationConfig{
			Temperature:      0.7,
			TopP:             0.95,
			CandidateCount:   1,
			MaxOutputTokens:  8192,
			ResponseMimeType: "application/json",
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return fmt.Errorf("encode generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("generation request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return classifyHTTPFailure(resp.StatusCode, body)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	if parsed.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: %s", domain.ErrContentBlocked, parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates", domain.ErrInvalidResponse)
	}
	if reason := parsed.Candidates[0].FinishReason; strings.Contains(strings.ToUpper(reason), "SAFETY") {
		return fmt.Errorf("%w: finish reason %s", domain.ErrContentBlocked, reason)
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	cleaned := StripFences(text.String())
	if cleaned == "" {
		return fmt.Errorf("%w: empty response text", domain.ErrInvalidResponse)
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		if c.logger != nil {
			c.logger.Warn().Err(err).Str("model", c.model).Msg("genai: response failed to parse")
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return nil
}

// classifyHTTPFailure maps upstream error statuses onto the error taxonomy.
func classifyHTTPFailure(status int, body []byte) error {
	var parsed errorResponse
	_ = json.Unmarshal(body, &parsed)
	message := parsed.Error.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	upper := strings.ToUpper(message + " " + parsed.Error.Status)
	switch {
	case status == http.StatusTooManyRequests,
		strings.Contains(upper, "RESOURCE_EXHAUSTED"),
		strings.Contains(upper, "QUOTA"):
		return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, message)
	case strings.Contains(upper, "SAFETY"):
		return fmt.Errorf("%w: %s", domain.ErrContentBlocked, message)
	default:
		return fmt.Errorf("generation service status %d: %s", status, message)
	}
}

// StripFences removes a surrounding markdown code fence, with or without a
// json language tag, from the generated text.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
