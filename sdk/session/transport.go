package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang/glog"
)

const (
	// CSRFCookieName is the name of the cookie in which the API delivers its
	// CSRF token.
	CSRFCookieName = "XSRF-TOKEN"
	// CSRFHeaderName is the header in which the CSRF token is echoed back.
	CSRFHeaderName = "X-XSRF-TOKEN"
)

// tokenSession is the part of the Manager a Transport depends on.
type tokenSession interface {
	GetAuthToken(ctx context.Context) (string, bool)
	Logout(ctx context.Context) error
}

// Transport is an http.RoundTripper that augments every outgoing request with
// the session's credentials and reacts to responses that indicate the session
// or the CSRF token is no longer good. It never alters a request's method or
// body and it always hands the response back to the caller.
type Transport struct {
	// APIAddress is the address of the API. The bearer token is only sent to,
	// and a 401 only ends the session when it comes from, this origin.
	APIAddress string
	// Base performs the actual round trips. If nil, http.DefaultTransport is
	// used.
	Base http.RoundTripper
	// Jar is the cookie jar of the client using this transport. If nil, the
	// client is not considered a browser and CSRF tokens are not echoed.
	Jar http.CookieJar
	// Session supplies the bearer token and is logged out on a 401.
	Session tokenSession
	// Navigator is used to redirect to the login view on a 401 and to reload
	// on a CSRF failure.
	Navigator Navigator
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var token string
	var hasToken bool
	if t.isAPIRequest(req) {
		token, hasToken = t.Session.GetAuthToken(ctx)
	}
	csrfToken, hasCSRFToken := t.csrfToken(req)
	if hasToken || hasCSRFToken {
		// A RoundTripper must not modify the request it was given
		req = req.Clone(ctx)
		if hasToken {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
		if hasCSRFToken {
			req.Header.Set(CSRFHeaderName, csrfToken)
		}
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if hasToken {
			glog.V(1).Infof(
				"%s %s: token expired or invalid; logging out",
				req.Method,
				req.URL.Path,
			)
			if err := t.Session.Logout(ctx); err != nil {
				glog.Errorf("error logging out after 401: %s", err)
			}
			t.Navigator.Redirect(ctx, ViewLogin)
		}
	case http.StatusForbidden:
		if isCSRFFailure(resp) {
			glog.V(1).Infof(
				"%s %s: CSRF token rejected; reloading",
				req.Method,
				req.URL.Path,
			)
			t.Navigator.Reload(ctx)
		}
	}
	return resp, nil
}

// isAPIRequest reports whether the request is addressed to the API's scheme,
// host and port.
func (t *Transport) isAPIRequest(req *http.Request) bool {
	apiURL, err := url.Parse(t.APIAddress)
	if err != nil || apiURL.Host == "" {
		return false
	}
	return origin(apiURL) == origin(req.URL)
}

func origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	port := u.Port()
	if port == "" {
		switch scheme {
		case "http":
			port = "80"
		case "https":
			port = "443"
		}
	}
	return fmt.Sprintf("%s://%s:%s", scheme, strings.ToLower(u.Hostname()), port)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// csrfToken returns the CSRF cookie's value if the client is a browser and
// the request is one that changes state.
func (t *Transport) csrfToken(req *http.Request) (string, bool) {
	if t.Jar == nil {
		return "", false
	}
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "", false
	}
	for _, cookie := range t.Jar.Cookies(req.URL) {
		if cookie.Name == CSRFCookieName && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

// isCSRFFailure reports whether a 403 response is a CSRF token rejection. The
// response body is read and then restored so the caller can still read it.
func isCSRFFailure(resp *http.Response) bool {
	if resp.Body == nil {
		return false
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err != nil {
		glog.Errorf("error reading 403 response body: %s", err)
		return false
	}
	message := string(bodyBytes)
	apiErr := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(bodyBytes, &apiErr); err == nil {
		message = apiErr.Message
	}
	return strings.Contains(strings.ToLower(message), "csrf")
}
