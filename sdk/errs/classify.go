package errs

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// apiError is the shape of the error bodies the GameRecs API returns.
type apiError struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Classify turns a non-success response into one of ErrUnauthorized,
// ErrValidation or ErrServer. path is the request path; it selects the
// fallback message when the server didn't provide one.
func Classify(statusCode int, body []byte, path string) error {
	apiErr := apiError{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &apiErr); err != nil {
			// Not an API error body (e.g. an HTML page from a proxy). Fall through
			// to the defaults below.
			apiErr = apiError{}
		}
	}
	message := strings.TrimSpace(apiErr.Message)

	if statusCode == http.StatusUnauthorized {
		if IsEmailUnverifiedMessage(message) {
			return &ErrUnauthorized{
				Message:         message,
				EmailUnverified: true,
			}
		}
		return &ErrUnauthorized{Message: invalidCredentialsMessage}
	}

	if len(apiErr.Errors) > 0 {
		return &ErrValidation{
			Message: joinFieldErrors(apiErr.Errors),
			Fields:  apiErr.Errors,
		}
	}

	if message == "" {
		message = DefaultMessage(path)
	}
	return &ErrServer{
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsEmailUnverifiedMessage reports whether a 401 message is the server telling
// the user to verify their email first.
func IsEmailUnverifiedMessage(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "email") &&
		(strings.Contains(m, "verify") || strings.Contains(m, "verified"))
}

// DefaultMessage returns the operation specific fallback message for a failed
// request to the given path.
func DefaultMessage(path string) string {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "/users/register"):
		return "An error occurred during registration"
	case strings.Contains(p, "/users/verify"):
		return "An error occurred during email verification"
	case strings.Contains(p, "/auth/login"), strings.Contains(p, "/auth/google"):
		return "An error occurred during login"
	default:
		return "An error occurred during the operation"
	}
}

// joinFieldErrors joins per-field messages into a single string. Fields are
// visited in name order so the result is stable.
func joinFieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fields[name])
	}
	return strings.Join(msgs, ", ")
}
