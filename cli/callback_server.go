package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// oauthOutcome is what the API's OAuth redirect delivered: a token, an
// authorization code or an error code.
type oauthOutcome struct {
	Token string
	Code  string
	Error string
}

var oauthErrorMessages = map[string]string{
	"no_code":               "Google did not return an authorization code",
	"invalid_state":         "the login request could not be verified",
	"token_exchange_failed": "the authorization code could not be exchanged",
	"rate_limit_exceeded":   "too many login attempts; please wait and retry",
	"missing_parameters":    "no authorization code or token was received",
}

func (o oauthOutcome) err() error {
	if o.Error == "" {
		return nil
	}
	reason, ok := oauthErrorMessages[o.Error]
	if !ok {
		reason = o.Error
	}
	return errors.Errorf("Authentication failed. Please try again. (%s)", reason)
}

// newCallbackRouter returns a router for the paths the API may redirect to
// after a Google login. The first outcome is sent to outcomes; later ones are
// dropped.
func newCallbackRouter(outcomes chan<- oauthOutcome) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	handle := func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		outcome := oauthOutcome{
			Token: query.Get("token"),
			Code:  query.Get("code"),
			Error: query.Get("error"),
		}
		if outcome.Token == "" && outcome.Code == "" && outcome.Error == "" {
			outcome.Error = "missing_parameters"
		}
		select {
		case outcomes <- outcome:
		default:
			glog.V(1).Info("ignoring repeated OAuth callback")
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if outcome.Error != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Authentication failed. Please try again.")
			return
		}
		fmt.Fprintln(
			w,
			"Processing your login... You may close this window and return to "+
				"your terminal.",
		)
	}
	router.HandleFunc("/auth/google/callback", handle).Methods(http.MethodGet)
	router.HandleFunc("/oauth2/redirect", handle).Methods(http.MethodGet)
	return router
}

// awaitOAuthOutcome listens on address for the API's OAuth redirect, calls
// start once the listener is ready and waits for the outcome.
func awaitOAuthOutcome(
	ctx context.Context,
	address string,
	timeout time.Duration,
	start func() error,
) (oauthOutcome, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return oauthOutcome{}, errors.Wrapf(
			err,
			"error listening for the login callback on %s",
			address,
		)
	}
	outcomes := make(chan oauthOutcome, 1)
	server := &http.Server{
		Handler:           newCallbackRouter(outcomes),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("login callback listener: %s", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			glog.Errorf("error stopping login callback listener: %s", err)
		}
	}()

	if err := start(); err != nil {
		return oauthOutcome{}, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case outcome := <-outcomes:
		return outcome, nil
	case <-timer.C:
		return oauthOutcome{}, errors.Errorf(
			"timed out after %s waiting for the Google login to complete",
			timeout,
		)
	case <-ctx.Done():
		return oauthOutcome{}, errors.Wrap(ctx.Err(), "login interrupted")
	}
}
