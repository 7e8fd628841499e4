// Package dictionary fetches short word definitions from a remote
// dictionary API. Lookups are best-effort: every failure collapses into
// FallbackText.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// FallbackText replaces a definition that could not be retrieved.
	FallbackText = "No definition available."

	DefaultEndpoint = "https://api.dictionaryapi.dev/api/v2/entries/en/%s"
	DefaultTimeout  = 3 * time.Second
)

var errNoDefinition = errors.New("response holds no definition")

// entry mirrors the subset of the dictionaryapi.dev payload we read.
type entry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

type Option func(*Client)

// WithEndpoint sets the URL template; %s is replaced by the escaped word.
func WithEndpoint(tmpl string) Option {
	return func(c *Client) { c.endpoint = tmpl }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// Lookup returns the first definition of the first meaning of the first
// entry for word, or FallbackText. It never blocks longer than the client
// timeout.
func (c *Client) Lookup(ctx context.Context, word string) string {
	def, err := c.fetch(ctx, word)
	if err != nil {
		log.Debug().Err(err).Str("word", word).Msg("definition lookup failed")
		return FallbackText
	}
	return def
}

func (c *Client) fetch(ctx context.Context, word string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.url(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("get %s: status %d", target, resp.StatusCode)
	}

	// Only the first entry is read; the rest of the array is never buffered.
	dec := json.NewDecoder(resp.Body)
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return "", fmt.Errorf("decode response: want array, got %v", tok)
	}
	if !dec.More() {
		return "", errNoDefinition
	}
	var first entry
	if err := dec.Decode(&first); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(first.Meanings) == 0 || len(first.Meanings[0].Definitions) == 0 {
		return "", errNoDefinition
	}
	def := first.Meanings[0].Definitions[0].Definition
	if def == "" {
		return "", errNoDefinition
	}
	return def, nil
}

func (c *Client) url(word string) string {
	escaped := url.PathEscape(word)
	if strings.Contains(c.endpoint, "%s") {
		return fmt.Sprintf(c.endpoint, escaped)
	}
	return strings.TrimRight(c.endpoint, "/") + "/" + escaped
}
