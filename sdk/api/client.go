// Package api provides clients for the GameRecs API's resources. Every
// request goes through a session.Manager's HTTP client, so requests carry the
// session's credentials and an expired session is cleared automatically.
package api

import (
	"github.com/gamerecs/gamerecs/internal/restmachinery"
	"github.com/gamerecs/gamerecs/sdk/session"
)

// Client is the general interface for the GameRecs API. It does little more
// than expose functions for obtaining more specialized clients for different
// areas of concern, like profile management or the game library.
type Client interface {
	// Profile returns a specialized client for the authenticated user's
	// profile.
	Profile() ProfileClient
	// Library returns a specialized client for the authenticated user's game
	// library.
	Library() LibraryClient
	// Games returns a specialized client for the game catalog.
	Games() GamesClient
	// Health returns a specialized client for checking service health.
	Health() HealthClient
}

// ClientOptions represents optional configuration for a Client.
type ClientOptions struct {
	// FrontendAddress, if set, is the address of a GameRecs web frontend whose
	// health is checked together with the API's.
	FrontendAddress string
}

type client struct {
	profileClient ProfileClient
	libraryClient LibraryClient
	gamesClient   GamesClient
	healthClient  HealthClient
}

// NewClient returns a GameRecs API client whose requests are made through the
// specified session manager.
func NewClient(
	apiAddress string,
	manager *session.Manager,
	opts *ClientOptions,
) Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	newBaseClient := func() *restmachinery.BaseClient {
		return &restmachinery.BaseClient{
			APIAddress: apiAddress,
			HTTPClient: manager.HTTPClient(),
		}
	}
	return &client{
		profileClient: &profileClient{BaseClient: newBaseClient()},
		libraryClient: &libraryClient{BaseClient: newBaseClient()},
		gamesClient:   &gamesClient{BaseClient: newBaseClient()},
		healthClient: &healthClient{
			BaseClient:      newBaseClient(),
			frontendAddress: opts.FrontendAddress,
		},
	}
}

func (c *client) Profile() ProfileClient {
	return c.profileClient
}

func (c *client) Library() LibraryClient {
	return c.libraryClient
}

func (c *client) Games() GamesClient {
	return c.gamesClient
}

func (c *client) Health() HealthClient {
	return c.healthClient
}
