// Package session manages the authentication session of a GameRecs API
// client: the bearer token, the cached record of the authenticated user and
// the observable authentication state derived from them.
package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gamerecs/gamerecs/internal/restmachinery"
	"github.com/gamerecs/gamerecs/sdk/errs"
	"github.com/gamerecs/gamerecs/sdk/storage"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	loginPath          = "api/auth/login"
	registerPath       = "api/users/register"
	verifyPath         = "api/users/verify"
	googleCallbackPath = "api/auth/google/callback"
	googleAuthPath     = "oauth2/authorization/google"
)

// ManagerOptions represents optional configuration for a Manager.
type ManagerOptions struct {
	// AllowInsecure permits connections to an API server whose TLS certificate
	// cannot be verified.
	AllowInsecure bool
	// Transport, if non-nil, is used in place of a default transport for the
	// actual network round trips.
	Transport http.RoundTripper
	// Jar, if non-nil, makes the client behave like a browser: cookies set by
	// the API are kept and the CSRF cookie is echoed back on mutating requests.
	Jar http.CookieJar
	// Navigator performs redirects, reloads and browsing. If nil, those are
	// only logged.
	Navigator Navigator
}

// Manager owns the authentication session. It persists the session to one of
// two storage backends, publishes authentication state to subscribers, and
// provides the HTTP client through which every API request should be made.
type Manager struct {
	*restmachinery.BaseClient
	backends      storage.Backends
	navigator     Navigator
	transport     *Transport
	authenticated *Observable[bool]
	user          *Observable[*User]
	// readFailed records that an unreadable backend was already reported
	readFailed atomic.Bool
	// mu serializes changes to the persisted session
	mu sync.Mutex
}

// NewManager returns a Manager for the API at the specified address. The
// authentication state is determined before NewManager returns by looking for
// a token in either of the backends.
func NewManager(
	apiAddress string,
	backends storage.Backends,
	opts *ManagerOptions,
) *Manager {
	if opts == nil {
		opts = &ManagerOptions{}
	}
	baseTransport := opts.Transport
	if baseTransport == nil {
		baseTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: opts.AllowInsecure, // nolint: gosec
			},
		}
	}
	navigator := opts.Navigator
	if navigator == nil {
		navigator = logNavigator{}
	}
	m := &Manager{
		backends:      backends,
		navigator:     navigator,
		authenticated: NewObservable(false),
		user:          NewObservable[*User](nil),
	}
	m.transport = &Transport{
		APIAddress: apiAddress,
		Base:       baseTransport,
		Jar:        opts.Jar,
		Session:    m,
		Navigator:  navigator,
	}
	m.BaseClient = &restmachinery.BaseClient{
		APIAddress: apiAddress,
		HTTPClient: &http.Client{
			Transport: m.transport,
			Jar:       opts.Jar,
		},
	}
	m.reconcile(context.Background())
	return m
}

// HTTPClient returns the client through which all API requests should be
// made. It attaches credentials and reacts to expired sessions.
func (m *Manager) HTTPClient() *http.Client {
	return m.BaseClient.HTTPClient
}

// Authenticated returns the observable authentication state.
func (m *Manager) Authenticated() *Observable[bool] {
	return m.authenticated
}

// User returns the observable record of the authenticated user. Its value is
// nil when there is no session or the persisted record was unusable.
func (m *Manager) User() *Observable[*User] {
	return m.user
}

// IsAuthenticated returns the current authentication state.
func (m *Manager) IsAuthenticated() bool {
	return m.authenticated.Value()
}

// CurrentUser returns the current user record, if any.
func (m *Manager) CurrentUser() *User {
	return m.user.Value()
}

// GetAuthToken returns the current token, looking in durable storage first
// and then in ephemeral storage.
func (m *Manager) GetAuthToken(ctx context.Context) (string, bool) {
	token, _, ok := m.find(ctx)
	return token, ok
}

// Login authenticates with a username and password. On success the session
// is persisted to durable storage if req.RememberMe is set and to ephemeral
// storage otherwise. On failure nothing changes.
func (m *Manager) Login(ctx context.Context, req LoginRequest) (User, error) {
	glog.V(1).Infof("logging in user %q", req.Username)
	resp := loginResponse{}
	if err := m.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        loginPath,
			ReqBodyObj:  req,
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	); err != nil {
		return User{}, err
	}
	return m.establish(ctx, resp, loginPath, req.RememberMe)
}

// Logout clears the session from both backends. It makes no network call and
// is safe to call when there is no session.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	glog.V(1).Info("logging out")
	var removeErr error
	for _, store := range m.backends.All() {
		if err := store.Remove(
			ctx,
			storage.KeyAuthToken,
			storage.KeyCurrentUser,
		); err != nil && removeErr == nil {
			removeErr = errors.Wrap(err, "error clearing session")
		}
	}
	m.reconcile(ctx)
	return removeErr
}

// RegisterUser creates a new account. It does not log the new user in. The
// username is lowercased before it is sent.
func (m *Manager) RegisterUser(
	ctx context.Context,
	registration Registration,
) (RegistrationResult, error) {
	registration.Username = strings.ToLower(strings.TrimSpace(registration.Username))
	registration.Email = strings.TrimSpace(registration.Email)
	registration.Bio = strings.TrimSpace(registration.Bio)
	registration.ProfilePictureURL =
		strings.TrimSpace(registration.ProfilePictureURL)
	glog.V(1).Infof("registering user %q", registration.Username)
	result := RegistrationResult{}
	return result, m.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        registerPath,
			ReqBodyObj:  registration,
			SuccessCode: http.StatusCreated,
			RespObj:     &result,
		},
	)
}

// VerifyEmail submits an email verification token. It has no effect on the
// session. The result is verified when the response says so explicitly or,
// when the response carries no explicit verdict, when the request succeeded.
func (m *Manager) VerifyEmail(
	ctx context.Context,
	token string,
) (VerificationResult, error) {
	resp := struct {
		Verified *bool  `json:"verified"`
		Message  string `json:"message"`
	}{}
	if err := m.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        verifyPath,
			QueryParams: map[string]string{"token": token},
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	); err != nil {
		return VerificationResult{}, err
	}
	result := VerificationResult{
		Verified: true,
		Message:  resp.Message,
	}
	if resp.Verified != nil {
		result.Verified = *resp.Verified
	}
	return result, nil
}

// InitiateGoogleLogin sends the user to the API's Google authorization
// endpoint. The outcome arrives later, through HandleGoogleCallback or
// HandleGoogleToken.
func (m *Manager) InitiateGoogleLogin(ctx context.Context) error {
	return m.navigator.Browse(ctx, m.URL(googleAuthPath))
}

// HandleGoogleCallback exchanges an OAuth authorization code for a session.
// OAuth sessions are always persisted to durable storage.
func (m *Manager) HandleGoogleCallback(
	ctx context.Context,
	code string,
) (User, error) {
	resp := loginResponse{}
	if err := m.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        googleCallbackPath,
			QueryParams: map[string]string{"code": code},
			SuccessCode: http.StatusOK,
			RespObj:     &resp,
		},
	); err != nil {
		return User{}, err
	}
	return m.establish(ctx, resp, googleCallbackPath, true)
}

// HandleGoogleToken establishes a session from a token the API delivered
// directly in the OAuth redirect. The user record is taken from the token's
// payload with DecodeUntrusted; the signature is not, and cannot be, checked
// here. If the token is malformed an *errs.ErrTokenDecode is returned and
// nothing is written. OAuth sessions are always persisted to durable storage.
func (m *Manager) HandleGoogleToken(
	ctx context.Context,
	token string,
) (User, error) {
	claims, err := DecodeUntrusted(token)
	if err != nil {
		return User{}, err
	}
	user := claims.user()
	return m.establish(
		ctx,
		loginResponse{
			Token:         token,
			Username:      user.Username,
			Email:         user.Email,
			EmailVerified: user.EmailVerified,
			GoogleID:      user.GoogleID,
		},
		googleCallbackPath,
		true,
	)
}

// establish persists a session obtained from the API and publishes the new
// state.
func (m *Manager) establish(
	ctx context.Context,
	resp loginResponse,
	path string,
	remember bool,
) (User, error) {
	if resp.Token == "" {
		return User{}, &errs.ErrServer{
			StatusCode: http.StatusOK,
			Message:    errs.DefaultMessage(path),
		}
	}
	user := resp.user()
	userBytes, err := json.Marshal(user)
	if err != nil {
		return User{}, errors.Wrap(err, "error marshaling user")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	target, other := m.backends.For(remember)
	if err := other.Remove(
		ctx,
		storage.KeyAuthToken,
		storage.KeyCurrentUser,
	); err != nil {
		return User{}, errors.Wrap(err, "error clearing previous session")
	}
	if err := target.Set(ctx, storage.KeyAuthToken, resp.Token); err != nil {
		return User{}, errors.Wrap(err, "error storing token")
	}
	if err := target.Set(ctx, storage.KeyCurrentUser, string(userBytes)); err != nil {
		// Keep the token and the user record together or not at all
		if rmErr := target.Remove(ctx, storage.KeyAuthToken); rmErr != nil {
			glog.Errorf("error removing orphaned token: %s", rmErr)
		}
		m.reconcile(ctx)
		return User{}, errors.Wrap(err, "error storing user")
	}
	glog.V(1).Infof(
		"session established for user %q (remembered: %t)",
		user.Username,
		remember,
	)
	m.reconcile(ctx)
	return user, nil
}

// find returns the token and the backend holding it, checking durable storage
// first. A backend that cannot be read is treated as empty.
func (m *Manager) find(ctx context.Context) (string, storage.Store, bool) {
	for _, store := range m.backends.All() {
		token, ok, err := store.Get(ctx, storage.KeyAuthToken)
		if err != nil {
			m.warnUnreadable(err)
			continue
		}
		if ok && token != "" {
			return token, store, true
		}
	}
	return "", nil, false
}

// reconcile derives the observable state from what is in storage and
// publishes it. Token presence alone decides the authentication state; the
// user record is published only if it is present and well formed.
func (m *Manager) reconcile(ctx context.Context) {
	_, store, ok := m.find(ctx)
	var user *User
	if ok {
		user = m.loadUser(ctx, store)
	}
	m.authenticated.publish(ok)
	m.user.publish(user)
}

func (m *Manager) loadUser(ctx context.Context, store storage.Store) *User {
	userJSON, ok, err := store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		m.warnUnreadable(err)
		return nil
	}
	if !ok {
		return nil
	}
	user := &User{}
	if err := json.Unmarshal([]byte(userJSON), user); err != nil {
		glog.Warningf("discarding unparseable stored user: %s", err)
		return nil
	}
	if !user.valid() {
		glog.Warning("discarding stored user with missing fields")
		return nil
	}
	return user
}

// warnUnreadable logs a storage read failure. Only the first is logged as a
// warning since the transport reads the token on every request.
func (m *Manager) warnUnreadable(err error) {
	if m.readFailed.CompareAndSwap(false, true) {
		glog.Warningf(
			"treating unreadable session storage as empty: %s",
			err,
		)
		return
	}
	glog.V(2).Infof("session storage unreadable: %s", err)
}

type logNavigator struct{}

func (logNavigator) Redirect(_ context.Context, view View) {
	glog.Infof("redirect to %s requested", view)
}

func (logNavigator) Reload(context.Context) {
	glog.Info("reload requested")
}

func (logNavigator) Browse(_ context.Context, url string) error {
	glog.Infof("browse to %s requested", url)
	return nil
}
