package api

import (
	"context"
	"net/http"

	"github.com/gamerecs/gamerecs/internal/restmachinery"
)

const profilePath = "api/users/profile"

// Profile is the authenticated user's public profile.
type Profile struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Bio               string `json:"bio,omitempty"`
	EmailVerified     bool   `json:"emailVerified"`
	GamesRated        int    `json:"gamesRated"`
	GamesInLibrary    int    `json:"gamesInLibrary"`
	JoinDate          string `json:"joinDate,omitempty"`
}

// ProfileUpdate carries the editable fields of a Profile. Empty optional
// fields are not sent.
type ProfileUpdate struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Bio               string `json:"bio,omitempty"`
}

// ProfileClient is the specialized client for the authenticated user's
// profile.
type ProfileClient interface {
	// Get returns the authenticated user's profile.
	Get(context.Context) (Profile, error)
	// Update replaces the editable fields of the authenticated user's profile
	// and returns the updated profile.
	Update(context.Context, ProfileUpdate) (Profile, error)
	// UpdateBio replaces only the bio and returns the updated profile.
	UpdateBio(ctx context.Context, bio string) (Profile, error)
}

type profileClient struct {
	*restmachinery.BaseClient
}

func (p *profileClient) Get(ctx context.Context) (Profile, error) {
	profile := Profile{}
	return profile, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        profilePath,
			SuccessCode: http.StatusOK,
			RespObj:     &profile,
		},
	)
}

func (p *profileClient) Update(
	ctx context.Context,
	update ProfileUpdate,
) (Profile, error) {
	profile := Profile{}
	return profile, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPut,
			Path:        profilePath,
			ReqBodyObj:  update,
			SuccessCode: http.StatusOK,
			RespObj:     &profile,
		},
	)
}

func (p *profileClient) UpdateBio(
	ctx context.Context,
	bio string,
) (Profile, error) {
	profile := Profile{}
	return profile, p.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method: http.MethodPatch,
			Path:   profilePath + "/bio",
			ReqBodyObj: struct {
				Bio string `json:"bio"`
			}{
				Bio: bio,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &profile,
		},
	)
}
