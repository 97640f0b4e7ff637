package requestmock

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
)

// DefaultStatus is used when Config.DefaultStatus is zero.
const DefaultStatus = http.StatusOK

// Logger receives a line for every invocation of a Stub. *testing.T and
// *testing.B satisfy it.
type Logger interface {
	Logf(format string, args ...any)
}

// Config controls construction of a Factory.
type Config struct {
	// DefaultStatus is the status code used by Default. If zero, DefaultStatus is used.
	DefaultStatus int

	// DefaultContent is the body used by Default. Nil means an empty body.
	DefaultContent []byte

	// Header holds headers added to every response built by the Factory.
	Header http.Header

	// Logger, when set, is told about every Stub invocation.
	Logger Logger
}

// Factory builds Stubs that return canned responses.
type Factory struct {
	// cfg holds the defaults applied to each Stub.
	cfg Config
}

// Response is the response-like value handed to the code under test.
type Response struct {
	// StatusCode is the HTTP status code. It is never validated.
	StatusCode int
	// Status is the status text for StatusCode, empty when net/http does not know the code.
	Status string
	// Header holds response headers.
	Header http.Header
	// Body is the raw payload.
	Body []byte
}

// Caller is the zero-argument callable injected into code under test.
type Caller func() *Response

// Stub is a recording Caller bound to a fixed status and body.
type Stub struct {
	status int
	body   []byte
	header http.Header
	logger Logger
	calls  atomic.Int64
}

// New creates a Factory, filling in defaults for unset Config fields.
func New(config Config) *Factory {
	cfg := config

	// Set default status if not provided
	if cfg.DefaultStatus == 0 {
		cfg.DefaultStatus = DefaultStatus
	}

	cfg.DefaultContent = copyBytes(cfg.DefaultContent)
	cfg.Header = cfg.Header.Clone()

	return &Factory{cfg: cfg}
}

// Mock returns a Stub from a zero Config Factory. It accepts string or byte
// slice content.
func Mock[T ~string | ~[]byte](status int, content T) *Stub {
	return New(Config{}).Respond(status, []byte(content))
}

// Default returns a Stub using the configured default status and content.
func (f *Factory) Default() *Stub {
	return f.Respond(f.cfg.DefaultStatus, f.cfg.DefaultContent)
}

// Respond returns a Stub whose responses carry status and content unchanged.
// A nil content yields a nil Body and an empty non-nil content an empty non-nil Body.
func (f *Factory) Respond(status int, content []byte) *Stub {
	return &Stub{
		status: status,
		body:   copyBytes(content),
		header: f.cfg.Header.Clone(),
		logger: f.cfg.Logger,
	}
}

// RespondString is Respond for string content.
func (f *Factory) RespondString(status int, content string) *Stub {
	return f.Respond(status, []byte(content))
}

// RespondJSON returns a Stub whose body is v encoded as JSON, with a matching
// Content-Type header.
func (f *Factory) RespondJSON(status int, v any) (*Stub, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncodeBody, err)
	}

	s := f.Respond(status, b)
	if s.header == nil {
		s.header = make(http.Header)
	}
	s.header.Set("Content-Type", "application/json")
	return s, nil
}

// Call returns a newly allocated Response. Every call returns an equal value.
func (s *Stub) Call() *Response {
	n := s.calls.Add(1)
	if s.logger != nil {
		s.logger.Logf("requestmock: call %d responding %d with %d byte body", n, s.status, len(s.body))
	}

	header := s.header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	return &Response{
		StatusCode: s.status,
		Status:     http.StatusText(s.status),
		Header:     header,
		Body:       copyBytes(s.body),
	}
}

// Caller returns the Stub as a Caller for injection.
func (s *Stub) Caller() Caller { return s.Call }

// Calls reports how many times the Stub has been invoked.
func (s *Stub) Calls() int { return int(s.calls.Load()) }

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.Body) }

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Join(ErrDecodeBody, err)
	}
	return nil
}

// HTTP converts the Response into a net/http response with a fresh body reader.
func (r *Response) HTTP() *http.Response {
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	status := r.Status
	if status == "" {
		status = http.StatusText(r.StatusCode)
	}

	return &http.Response{
		Status:        statusLine(r.StatusCode, status),
		StatusCode:    r.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
	}
}

// statusLine mirrors net/http's "200 OK" Status format.
func statusLine(code int, text string) string {
	line := strconv.Itoa(code)
	if text != "" {
		line += " " + text
	}
	return line
}

// copyBytes returns a copy of b, preserving nil and empty non-nil slices.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
