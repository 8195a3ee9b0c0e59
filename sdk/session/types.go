package session

import "context"

// User is the cached record of the authenticated user.
type User struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	GoogleID      string `json:"googleId,omitempty"`
}

// valid reports whether the record carries the fields every session record
// must have.
func (u User) valid() bool {
	return u.Username != "" && u.Email != ""
}

// LoginRequest carries credentials for a username/password login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// loginResponse is what the API returns from both the login and the Google
// callback endpoints.
type loginResponse struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	GoogleID      string `json:"googleId"`
}

func (l loginResponse) user() User {
	return User{
		Username:      l.Username,
		Email:         l.Email,
		EmailVerified: l.EmailVerified,
		GoogleID:      l.GoogleID,
	}
}

// Registration carries the fields for creating a new account. Bio and
// ProfilePictureURL are optional.
type Registration struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Bio               string `json:"bio,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// RegistrationResult is the account the API created.
type RegistrationResult struct {
	UserID            int64  `json:"userId"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Bio               string `json:"bio,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	JoinDate          string `json:"joinDate"`
}

// VerificationResult is the outcome of an email verification.
type VerificationResult struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// View names a place a Navigator can take the user.
type View string

const (
	// ViewLogin is the login view.
	ViewLogin View = "login"
	// ViewDashboard is where authenticated users land.
	ViewDashboard View = "dashboard"
	// ViewProfile is the profile view, shown after an OAuth login.
	ViewProfile View = "profile"
)

// Navigator performs the navigation side effects of session handling on
// behalf of whatever user interface sits on top of the session manager.
type Navigator interface {
	// Redirect takes the user to the specified view.
	Redirect(ctx context.Context, view View)
	// Reload starts over with fresh state from the server, which includes a
	// fresh CSRF cookie.
	Reload(ctx context.Context)
	// Browse sends the user to an external URL.
	Browse(ctx context.Context, url string) error
}
