package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `[{"word":"python","meanings":[
	{"partOfSpeech":"noun","definitions":[
		{"definition":"A large heavy-bodied nonvenomous snake."},
		{"definition":"A high-level programming language."}]},
	{"partOfSpeech":"verb","definitions":[{"definition":"unused"}]}]}]`

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupReturnsFirstDefinition(t *testing.T) {
	var gotPath string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	})

	c := New(WithEndpoint(srv.URL + "/api/v2/entries/en/%s"))
	assert.Equal(t, "A large heavy-bodied nonvenomous snake.", c.Lookup(context.Background(), "python"))
	assert.Equal(t, "/api/v2/entries/en/python", gotPath)
}

func TestLookupReadsLargeResponses(t *testing.T) {
	filler := `{"meanings":[{"definitions":[{"definition":"` + strings.Repeat("x", 1<<10) + `"}]}]}`
	body := `[{"meanings":[{"definitions":[{"definition":"A set of instructions."}]}]}` +
		strings.Repeat(","+filler, 200) + `]`
	require.Greater(t, len(body), 128<<10)

	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
	c := New(WithEndpoint(srv.URL + "/%s"))
	assert.Equal(t, "A set of instructions.", c.Lookup(context.Background(), "program"))
}

func TestLookupFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{"not found", http.StatusNotFound, `{"title":"No Definitions Found"}`},
		{"server error", http.StatusInternalServerError, samplePayload},
		{"malformed", http.StatusOK, `[{"meanings":`},
		{"wrong shape", http.StatusOK, `{"meanings":[]}`},
		{"no entries", http.StatusOK, `[]`},
		{"no meanings", http.StatusOK, `[{"meanings":[]}]`},
		{"no definitions", http.StatusOK, `[{"meanings":[{"definitions":[]}]}]`},
		{"empty definition", http.StatusOK, `[{"meanings":[{"definitions":[{"definition":""}]}]}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			})
			c := New(WithEndpoint(srv.URL + "/%s"))
			assert.Equal(t, FallbackText, c.Lookup(context.Background(), "python"))
		})
	}
}

func TestLookupTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := New(WithEndpoint(srv.URL+"/%s"), WithTimeout(50*time.Millisecond))
	start := time.Now()
	got := c.Lookup(context.Background(), "python")
	assert.Equal(t, FallbackText, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLookupConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New(WithEndpoint(addr + "/%s"))
	assert.Equal(t, FallbackText, c.Lookup(context.Background(), "python"))
}

func TestLookupCancelledContext(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithEndpoint(srv.URL + "/%s"))
	assert.Equal(t, FallbackText, c.Lookup(ctx, "python"))
}

func TestURLTemplating(t *testing.T) {
	c := New(WithEndpoint("http://dict.local/entries/%s"))
	assert.Equal(t, "http://dict.local/entries/two%20words", c.url("two words"))

	c = New(WithEndpoint("http://dict.local/entries/"))
	assert.Equal(t, "http://dict.local/entries/python", c.url("python"))
}

func TestNewDefaults(t *testing.T) {
	c := New(WithTimeout(0))
	require.NotNil(t, c.http)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
}
