package hostmock

import (
	"errors"
	"fmt"
	"math"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/http"
	"github.com/tarmac-project/requestmock"
)

const (
	// DefaultNamespace is the namespace Tarmac functions use when none is configured.
	DefaultNamespace = "tarmac"

	// Capability is the waPC capability used by the Tarmac HTTP client.
	Capability = "httpclient"

	// Function is the waPC function used by the Tarmac HTTP client.
	Function = "call"

	hostStatusOK   = int32(200)
	hostStatusText = "OK"
)

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when the capability is not as expected.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned when the function is not as expected.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")

	// ErrNilResponse is returned when there is no response to encode.
	ErrNilResponse = errors.New("response is nil")

	// ErrStatusOutOfRange is returned when a status code does not fit the int32 wire field.
	ErrStatusOutOfRange = errors.New("status code out of range")

	// ErrMarshalResponse wraps failures while encoding the host response.
	ErrMarshalResponse = errors.New("failed to marshal response")

	// ErrUnmarshalRequest wraps failures while decoding a request payload.
	ErrUnmarshalRequest = errors.New("failed to unmarshal request")
)

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// ExpectedNamespace defines the namespace expected in the host call. Empty matches any.
	ExpectedNamespace string

	// ExpectedCapability defines the capability expected in the host call. Empty matches any.
	ExpectedCapability string

	// ExpectedFunction defines the function name expected in the host call. Empty matches any.
	ExpectedFunction string

	// Error is the error to return if the mock is configured to fail.
	Error error

	// PayloadValidator validates the payload passed to the host call.
	PayloadValidator func([]byte) error

	// Caller produces the HTTP response returned for the host call.
	Caller requestmock.Caller

	// Fail indicates whether the mock should return an error.
	Fail bool
}

// Mock simulates the Tarmac host side of an HTTP client call.
type Mock struct {
	cfg Config
}

// New creates a new instance of the Mock based on the provided Config.
func New(config Config) (*Mock, error) {
	return &Mock{cfg: config}, nil
}

// HostCall validates the routing and payload, then returns the Caller's
// response encoded for the guest.
func (m *Mock) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	// Return user-defined error if Fail is set
	if m.cfg.Fail && m.cfg.Error != nil {
		return nil, m.cfg.Error
	}

	if m.cfg.Fail {
		return nil, ErrOperationFailed
	}

	if m.cfg.ExpectedNamespace != "" && m.cfg.ExpectedNamespace != namespace {
		return nil, fmt.Errorf(
			"%w: expected namespace %s, got %s",
			ErrUnexpectedNamespace,
			m.cfg.ExpectedNamespace,
			namespace,
		)
	}

	if m.cfg.ExpectedCapability != "" && m.cfg.ExpectedCapability != capability {
		return nil, fmt.Errorf(
			"%w: expected capability %s, got %s",
			ErrUnexpectedCapability,
			m.cfg.ExpectedCapability,
			capability,
		)
	}

	if m.cfg.ExpectedFunction != "" && m.cfg.ExpectedFunction != function {
		return nil, fmt.Errorf("%w: expected function %s, got %s", ErrUnexpectedFunction, m.cfg.ExpectedFunction, function)
	}

	if m.cfg.PayloadValidator != nil {
		if err := m.cfg.PayloadValidator(payload); err != nil {
			return nil, err
		}
	}

	// Default to no response
	if m.cfg.Caller == nil {
		return nil, nil
	}

	return Encode(m.cfg.Caller())
}

// Encode converts r into the protobuf payload the Tarmac host returns for a
// successful HTTP client call. The host status is always 200 "OK"; the HTTP
// status travels in Code and must fit in an int32.
func Encode(r *requestmock.Response) ([]byte, error) {
	if r == nil {
		return nil, ErrNilResponse
	}

	if r.StatusCode < math.MinInt32 || r.StatusCode > math.MaxInt32 {
		return nil, errors.Join(ErrStatusOutOfRange, fmt.Errorf("status code %d", r.StatusCode))
	}

	headers := make(map[string]*proto.Header, len(r.Header))
	for name, values := range r.Header {
		headers[name] = &proto.Header{Values: append([]string(nil), values...)}
	}

	resp := &proto.HTTPClientResponse{
		Status:  &sdkproto.Status{Status: hostStatusText, Code: hostStatusOK},
		Code:    int32(r.StatusCode),
		Headers: headers,
		Body:    r.Body,
	}

	b, err := resp.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalResponse, err)
	}
	return b, nil
}

// DecodeRequest unmarshals a guest HTTP client payload, for use in
// PayloadValidator implementations.
func DecodeRequest(payload []byte) (*proto.HTTPClient, error) {
	var req proto.HTTPClient
	if err := req.UnmarshalVT(payload); err != nil {
		return nil, errors.Join(ErrUnmarshalRequest, err)
	}
	return &req, nil
}
