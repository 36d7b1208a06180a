package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/elephantasm/elephantasm-go/pkg/model"
	"github.com/elephantasm/elephantasm-go/pkg/utils/logging"
)

// Client is the HTTP client for the Elephantasm long-term agentic memory
// API. It holds only immutable configuration and a shared http.Client, so a
// single instance is safe for concurrent use. There are no retries, no
// caching and no session state; every call is one request/response exchange.
type Client struct {
	apiKey   string
	animaID  string
	endpoint string
	timeout  time.Duration
	baseURL  string

	httpClient *http.Client
}

// Option configures a Client during New.
type Option func(*Client)

// WithAPIKey sets the API key, overriding ELEPHANTASM_API_KEY.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithAnimaID sets the default anima for Inject and Extract, overriding
// ELEPHANTASM_ANIMA_ID.
func WithAnimaID(animaID string) Option {
	return func(c *Client) {
		c.animaID = animaID
	}
}

// WithEndpoint sets the API endpoint, overriding ELEPHANTASM_ENDPOINT.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the per-request deadline, overriding ELEPHANTASM_TIMEOUT.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller owns its
// timeout configuration in that case.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client from environment configuration and the given options.
// It fails without any I/O if no API key is resolvable.
func New(opts ...Option) (*Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiKey:   cfg.APIKey,
		animaID:  cfg.AnimaID,
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	c.endpoint = strings.TrimRight(c.endpoint, "/")
	c.baseURL = c.endpoint + "/api"

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Endpoint returns the configured endpoint without a trailing slash.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// AnimaID returns the default anima ID, if any.
func (c *Client) AnimaID() string {
	return c.animaID
}

// Close releases idle connections held by the underlying transport. Use
// defer right after New for scoped lifetimes.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// CreateAnima creates a new anima (agent entity).
func (c *Client) CreateAnima(ctx context.Context, input model.AnimaCreate) (*model.Anima, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "/animas", input)
	if err != nil {
		return nil, err
	}
	return decode[model.Anima](resp)
}

// InjectInput holds parameters for Inject. All fields are optional; AnimaID
// falls back to the client default.
type InjectInput struct {
	AnimaID string
	Query   string
	Preset  string
}

// Inject retrieves the latest compiled memory pack for context injection.
// It returns (nil, nil) when the backend has no pack yet, which is distinct
// from a NotFound error for an unknown anima.
func (c *Client) Inject(ctx context.Context, input InjectInput) (*model.MemoryPack, error) {
	animaID, err := c.resolveAnimaID(input.AnimaID)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if input.Query != "" {
		params.Set("query", input.Query)
	}
	if input.Preset != "" {
		params.Set("preset", input.Preset)
	}

	path := fmt.Sprintf("/animas/%s/memory-packs/latest", animaID)
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decode[model.MemoryPack](resp)
}

// ExtractInput holds parameters for Extract. EventType accepts the dotted
// wire values and their underscore aliases in any case ("MESSAGE_IN",
// "Tool_Call"). AnimaID falls back to the client default.
type ExtractInput struct {
	EventType       model.EventType
	Content         string
	AnimaID         string
	SessionID       string
	Role            string
	Author          string
	Summary         string
	OccurredAt      *time.Time
	Meta            map[string]any
	SourceURI       string
	DedupeKey       string
	ImportanceScore *float64
}

// Extract captures an event (message, tool call, etc.) for memory
// synthesis. Event type resolution, anima resolution and importance score
// bounds are all checked locally before any request goes out.
func (c *Client) Extract(ctx context.Context, input ExtractInput) (*model.Event, error) {
	animaID, err := c.resolveAnimaID(input.AnimaID)
	if err != nil {
		return nil, err
	}
	animaUUID, err := uuid.Parse(animaID)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid anima id", goerr.V("anima_id", animaID))
	}

	eventType, err := model.ResolveEventType(string(input.EventType))
	if err != nil {
		return nil, err
	}

	meta := input.Meta
	if meta == nil {
		meta = map[string]any{}
	}

	payload := model.EventCreate{
		AnimaID:         animaUUID,
		EventType:       eventType,
		Content:         input.Content,
		Role:            input.Role,
		Author:          input.Author,
		Summary:         input.Summary,
		OccurredAt:      input.OccurredAt,
		SessionID:       input.SessionID,
		Meta:            meta,
		SourceURI:       input.SourceURI,
		DedupeKey:       input.DedupeKey,
		ImportanceScore: input.ImportanceScore,
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "/events", payload)
	if err != nil {
		return nil, err
	}
	return decode[model.Event](resp)
}

func (c *Client) resolveAnimaID(animaID string) (string, error) {
	if animaID != "" {
		return animaID, nil
	}
	if c.animaID != "" {
		return c.animaID, nil
	}
	return "", ErrNoAnimaID
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logging.From(req.Context()).Debug("sending request",
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, goerr.Wrap(ErrTimeout, "request deadline exceeded",
				goerr.V("url", req.URL.String()),
				goerr.V("timeout", c.timeout))
		}
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("url", req.URL.String()))
	}
	return resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
