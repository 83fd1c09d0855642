// Package knownwords talks to the remote known-words store.
package knownwords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Endpoint paths served by the store.
const (
	AddPath    = "/api/add-known-words"
	ListPath   = "/api/get-known-words"
	RemovePath = "/api/remove-known-word"
)

const defaultTimeout = 10 * time.Second

// Client is a known-words store client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Result is the store's verdict on a registration.
type Result struct {
	Added   int
	Skipped int
}

func (r Result) String() string {
	return fmt.Sprintf("added %d, skipped %d", r.Added, r.Skipped)
}

type wordsRequest struct {
	Words []string `json:"words"`
}

type wordRequest struct {
	Word string `json:"word"`
}

// envelope is every response shape the store produces. Counts come in
// camelCase from current stores and snake_case from older ones.
type envelope struct {
	Success      *bool    `json:"success"`
	Error        string   `json:"error"`
	Message      string   `json:"message"`
	AddedCount   *int     `json:"addedCount"`
	SkippedCount *int     `json:"skippedCount"`
	AddedSnake   *int     `json:"added_count"`
	SkippedSnake *int     `json:"skipped_count"`
	Words        []string `json:"words"`
	Count        int      `json:"count"`
}

func (e *envelope) result() Result {
	var r Result
	switch {
	case e.AddedCount != nil:
		r.Added = *e.AddedCount
	case e.AddedSnake != nil:
		r.Added = *e.AddedSnake
	}
	switch {
	case e.SkippedCount != nil:
		r.Skipped = *e.SkippedCount
	case e.SkippedSnake != nil:
		r.Skipped = *e.SkippedSnake
	}
	return r
}

// NewClient creates a client for the store at baseURL.
// A zero timeout uses the default of 10s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("component", "knownwords"),
	}
}

// BaseURL returns the store address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register submits words in a single request.
func (c *Client) Register(ctx context.Context, words []string) (Result, error) {
	env, err := c.do(ctx, http.MethodPost, AddPath, wordsRequest{Words: words})
	if err != nil {
		return Result{}, err
	}

	res := env.result()
	c.log.InfoContext(ctx, "registered known words",
		slog.Int("submitted", len(words)),
		slog.Int("added", res.Added),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}

// List returns every word in the store.
func (c *Client) List(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, ListPath, nil)
	if err != nil {
		return nil, err
	}
	return env.Words, nil
}

// Probe checks that the store is reachable and answering.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.List(ctx)
	return err
}

// Remove deletes one word from the store.
func (c *Client) Remove(ctx context.Context, word string) error {
	_, err := c.do(ctx, http.MethodPost, RemovePath, wordRequest{Word: word})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "store request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "store unreachable", slog.String("path", path), slog.String("error", err.Error()))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, env.Error)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", decodeErr)
	}
	if env.Success != nil && !*env.Success {
		return nil, remoteError(resp.StatusCode, env.Error)
	}

	return &env, nil
}
