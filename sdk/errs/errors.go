package errs

import "fmt"

const (
	networkErrorMessage       = "Network error. Please check your internet connection."
	invalidCredentialsMessage = "Invalid username or password"
)

// ErrNetwork represents a request that never reached the API server, or whose
// response never made it back.
type ErrNetwork struct {
	Cause error `json:"-"`
}

// NewErrNetwork returns an ErrNetwork wrapping the underlying transport
// failure.
func NewErrNetwork(cause error) *ErrNetwork {
	return &ErrNetwork{Cause: cause}
}

func (e *ErrNetwork) Error() string {
	return networkErrorMessage
}

// Unwrap exposes the underlying transport failure.
func (e *ErrNetwork) Unwrap() error {
	return e.Cause
}

// ErrUnauthorized represents a 401 from the API server. Message is either the
// server's "email not verified" message, verbatim, or a generic invalid
// credentials message.
type ErrUnauthorized struct {
	Message         string `json:"message"`
	EmailUnverified bool   `json:"emailUnverified"`
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation represents a response carrying structured, per-field
// validation failures.
type ErrValidation struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors"`
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrServer represents any other non-2xx response.
type ErrServer struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
}

func (e *ErrServer) Error() string {
	return e.Message
}

// ErrTokenDecode is returned, without any network involvement, when a token
// delivered by an OAuth redirect cannot be decoded.
type ErrTokenDecode struct {
	Reason string
	Cause  error
}

// NewErrTokenDecode returns an ErrTokenDecode.
func NewErrTokenDecode(reason string, cause error) *ErrTokenDecode {
	return &ErrTokenDecode{
		Reason: reason,
		Cause:  cause,
	}
}

func (e *ErrTokenDecode) Error() string {
	return fmt.Sprintf("Malformed token: %s", e.Reason)
}

// Unwrap exposes the underlying decoding failure, if any.
func (e *ErrTokenDecode) Unwrap() error {
	return e.Cause
}
