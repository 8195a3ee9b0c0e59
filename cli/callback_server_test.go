package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCallbackRouter(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		expectedStatus int
		expected       oauthOutcome
	}{
		{
			name:           "token",
			path:           "/auth/google/callback?token=abc.def.ghi",
			expectedStatus: http.StatusOK,
			expected:       oauthOutcome{Token: "abc.def.ghi"},
		},
		{
			name:           "code",
			path:           "/oauth2/redirect?code=the-code",
			expectedStatus: http.StatusOK,
			expected:       oauthOutcome{Code: "the-code"},
		},
		{
			name:           "error",
			path:           "/auth/google/callback?error=token_exchange_failed",
			expectedStatus: http.StatusBadRequest,
			expected:       oauthOutcome{Error: "token_exchange_failed"},
		},
		{
			name:           "nothing",
			path:           "/auth/google/callback",
			expectedStatus: http.StatusBadRequest,
			expected:       oauthOutcome{Error: "missing_parameters"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			outcomes := make(chan oauthOutcome, 1)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			newCallbackRouter(outcomes).ServeHTTP(rr, req)
			require.Equal(t, testCase.expectedStatus, rr.Code)
			require.Equal(t, testCase.expected, <-outcomes)
		})
	}
}

func TestCallbackRouterRejectsOtherMethods(t *testing.T) {
	outcomes := make(chan oauthOutcome, 1)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/google/callback?code=the-code",
		nil,
	)
	newCallbackRouter(outcomes).ServeHTTP(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Empty(t, outcomes)
}

func TestCallbackRouterKeepsFirstOutcome(t *testing.T) {
	outcomes := make(chan oauthOutcome, 1)
	router := newCallbackRouter(outcomes)
	for _, path := range []string{
		"/auth/google/callback?code=first",
		"/auth/google/callback?code=second",
	} {
		router.ServeHTTP(
			httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, path, nil),
		)
	}
	require.Equal(t, oauthOutcome{Code: "first"}, <-outcomes)
}

func TestOAuthOutcomeErr(t *testing.T) {
	require.NoError(t, oauthOutcome{Code: "x"}.err())
	err := oauthOutcome{Error: "rate_limit_exceeded"}.err()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Authentication failed. Please try again.")
	require.Contains(t, err.Error(), "too many login attempts")
	err = oauthOutcome{Error: "something_new"}.err()
	require.Contains(t, err.Error(), "something_new")
}

func freeAddress(t *testing.T) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())
	return address
}

func TestAwaitOAuthOutcome(t *testing.T) {
	address := freeAddress(t)
	outcome, err := awaitOAuthOutcome(
		context.Background(),
		address,
		time.Minute,
		func() error {
			// Stands in for the browser following the API's redirect
			go func() {
				resp, err := http.Get(
					fmt.Sprintf("http://%s/auth/google/callback?token=a.b.c", address),
				)
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, oauthOutcome{Token: "a.b.c"}, outcome)
}

func TestAwaitOAuthOutcomeTimeout(t *testing.T) {
	_, err := awaitOAuthOutcome(
		context.Background(),
		freeAddress(t),
		10*time.Millisecond,
		func() error { return nil },
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
}

func TestAwaitOAuthOutcomeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, err := awaitOAuthOutcome(
		ctx,
		freeAddress(t),
		time.Minute,
		func() error {
			cancel()
			return nil
		},
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "login interrupted")
}
