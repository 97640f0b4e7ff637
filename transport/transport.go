package transport

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/tarmac-project/requestmock"
)

var (
	// ErrNilRequest indicates RoundTrip received a nil Request pointer.
	ErrNilRequest = errors.New("request is nil")

	// ErrReadBody wraps failures while reading a request body stream.
	ErrReadBody = errors.New("failed to read request body")

	// ErrNoResponse is returned when a configured Caller produced no response.
	ErrNoResponse = errors.New("caller returned no response")
)

// Config controls construction of a Transport.
type Config struct {
	// Default answers requests with no method/URL-specific route. If nil, a
	// 200 response with an empty body is used.
	Default requestmock.Caller
}

// Call captures a single request observed by the Transport.
type Call struct {
	// Method is the HTTP method used.
	Method string
	// URL is the requested URL string.
	URL string
	// Body contains the request body, if provided.
	Body []byte
	// Header holds request headers passed by the caller.
	Header http.Header
}

// route is either a Caller or a scripted error.
type route struct {
	caller requestmock.Caller
	err    error
}

// Transport implements http.RoundTripper on top of requestmock Callers. It
// never performs network I/O.
type Transport struct {
	mu sync.Mutex

	// routes maps "METHOD URL" keys to configured Callers.
	routes map[string]route

	// def answers requests without a route.
	def requestmock.Caller

	// calls records each request observed by the Transport.
	calls []Call
}

// Compile-time check: ensure Transport implements http.RoundTripper.
var _ http.RoundTripper = (*Transport)(nil)

// New creates a new Transport.
func New(config Config) *Transport {
	def := config.Default
	if def == nil {
		def = requestmock.New(requestmock.Config{}).Default().Caller()
	}

	return &Transport{
		routes: make(map[string]route),
		def:    def,
		calls:  []Call{},
	}
}

// ResponseBuilder configures the answer for a specific method and URL.
type ResponseBuilder struct {
	transport *Transport
	key       string
}

// On starts configuration of a response for a given method and URL.
func (t *Transport) On(method, url string) *ResponseBuilder {
	return &ResponseBuilder{
		transport: t,
		key:       method + " " + url,
	}
}

// Return answers the configured method and URL with caller.
func (b *ResponseBuilder) Return(caller requestmock.Caller) *Transport {
	b.transport.mu.Lock()
	defer b.transport.mu.Unlock()

	b.transport.routes[b.key] = route{caller: caller}
	return b.transport
}

// ReturnError makes requests to the configured method and URL fail with err,
// simulating a transport-level failure.
func (b *ResponseBuilder) ReturnError(err error) *Transport {
	b.transport.mu.Lock()
	defer b.transport.mu.Unlock()

	b.transport.routes[b.key] = route{err: err}
	return b.transport
}

// Client returns an *http.Client that sends every request through t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Calls returns a copy of the requests observed so far.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Call(nil), t.calls...)
}

// RoundTrip records the request and answers it from the matching Caller.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, ErrNilRequest
	}

	// Read the body content if present
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, errors.Join(ErrReadBody, err)
		}
		body = b
	}

	url := req.URL.String()
	r := t.record(Call{
		Method: req.Method,
		URL:    url,
		Body:   body,
		Header: req.Header.Clone(),
	})

	if r.err != nil {
		return nil, r.err
	}

	if r.caller == nil {
		return nil, ErrNoResponse
	}

	resp := r.caller()
	if resp == nil {
		return nil, ErrNoResponse
	}

	out := resp.HTTP()
	out.Request = req
	return out, nil
}

// record appends c to the call log and returns the route that answers it.
func (t *Transport) record(c Call) route {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls = append(t.calls, c)
	if r, ok := t.routes[c.Method+" "+c.URL]; ok {
		return r
	}
	return route{caller: t.def}
}
