package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gamerecs/gamerecs/sdk/errs"
	"github.com/golang-jwt/jwt/v5"
)

// UntrustedClaims are claims read from a token's payload WITHOUT verifying its
// signature. They are good for display and for seeding the cached user
// record. They are not proof of anything; the API validates the token on every
// request that carries it.
type UntrustedClaims struct {
	Subject       string
	Email         string
	Username      string
	EmailVerified *bool
	GoogleID      string
	ExpiresAt     *time.Time
}

// DecodeUntrusted decodes the payload (middle) segment of a three segment,
// dot-separated token. Neither the header nor the signature is examined. An
// *errs.ErrTokenDecode is returned if the token does not have exactly three
// segments or if its payload is not base64-encoded JSON. Both the URL-safe and
// the standard base64 alphabets are accepted, with or without padding.
func DecodeUntrusted(token string) (UntrustedClaims, error) {
	claims := UntrustedClaims{}
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return claims, errs.NewErrTokenDecode(
			"expected three dot-separated segments",
			nil,
		)
	}

	payload, err := jwt.NewParser(jwt.WithPaddingAllowed()).
		DecodeSegment(segments[1])
	if err != nil {
		payload, err = base64.StdEncoding.DecodeString(padded(segments[1]))
	}
	if err != nil {
		return claims, errs.NewErrTokenDecode(
			"payload is not base64-encoded JSON",
			err,
		)
	}
	mapClaims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &mapClaims); err != nil {
		return claims, errs.NewErrTokenDecode(
			"payload is not base64-encoded JSON",
			err,
		)
	}

	claims.Subject, _ = mapClaims.GetSubject()
	claims.Email = stringClaim(mapClaims, "email")
	if claims.Email == "" && strings.Contains(claims.Subject, "@") {
		claims.Email = claims.Subject
	}
	claims.Username = stringClaim(mapClaims, "username")
	if claims.Username == "" {
		claims.Username = stringClaim(mapClaims, "preferred_username")
	}
	if claims.Username == "" && claims.Email != "" {
		claims.Username = strings.SplitN(claims.Email, "@", 2)[0]
	}
	if claims.Username == "" {
		claims.Username = claims.Subject
	}
	if verified, ok := mapClaims["emailVerified"].(bool); ok {
		claims.EmailVerified = &verified
	}
	claims.GoogleID = stringClaim(mapClaims, "googleId")
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt := exp.Time
		claims.ExpiresAt = &expiresAt
	}
	return claims, nil
}

func padded(segment string) string {
	if rem := len(segment) % 4; rem > 0 {
		return segment + strings.Repeat("=", 4-rem)
	}
	return segment
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return strings.TrimSpace(value)
}

// user derives a session record from the claims. OAuth identities come from
// the provider, so the email is considered verified unless the token says
// otherwise.
func (u UntrustedClaims) user() User {
	verified := true
	if u.EmailVerified != nil {
		verified = *u.EmailVerified
	}
	return User{
		Username:      u.Username,
		Email:         u.Email,
		EmailVerified: verified,
		GoogleID:      u.GoogleID,
	}
}
