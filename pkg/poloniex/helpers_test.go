package poloniex

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"

	"poloniex/internal/nonce"
	"poloniex/pkg/core"
)

const (
	testKey    = "test-key-0123456789"
	testSecret = "test-secret"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
	Form   url.Values
	Header http.Header
}

type stubServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
	status   int
	reply    string
	delay    time.Duration
}

func newStubServer(t *testing.T, reply string) *stubServer {
	t.Helper()
	s := &stubServer{status: http.StatusOK, reply: reply}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))

		s.mu.Lock()
		s.requests = append(s.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   string(body),
			Form:   form,
			Header: r.Header.Clone(),
		})
		status, reply, delay := s.status, s.reply, s.delay
		s.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}

		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) setReply(status int, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.reply = reply
}

func (s *stubServer) setDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *stubServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *stubServer) last(t *testing.T) capturedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests, "no request reached the server")
	return s.requests[len(s.requests)-1]
}

func testConfig(s *stubServer) *core.Config {
	return core.DefaultConfig().
		WithEndpoints(s.URL+"/public", s.URL+"/tradingApi").
		WithCredentials(testKey, testSecret).
		WithTimeout(5*time.Second).
		WithRateLimit(0, 0)
}

type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingSink) LogError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingSink) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func newTestClient(t *testing.T, config *core.Config, opts ...Option) *Client {
	t.Helper()
	c, err := New(config, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func fixedNonces(ms int64) *nonce.Generator {
	return nonce.NewWithClock(func() time.Time { return time.UnixMilli(ms) })
}

func dec(t *testing.T, s string) apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return *d
}
