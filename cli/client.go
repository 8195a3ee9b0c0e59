package main

import (
	"context"
	"net/http/cookiejar"

	"github.com/gamerecs/gamerecs/internal/redis"
	"github.com/gamerecs/gamerecs/sdk/api"
	"github.com/gamerecs/gamerecs/sdk/session"
	"github.com/gamerecs/gamerecs/sdk/storage"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/publicsuffix"
)

const (
	metadataSession = "session"
	metadataShell   = "shell"
)

// clientSession is everything a command needs to talk to the API. There is
// one per process, so every command run from a shell shares it.
type clientSession struct {
	config    config
	manager   *session.Manager
	client    api.Client
	navigator *terminalNavigator
}

func getSession(c *cli.Context) (*clientSession, error) {
	if s, ok := c.App.Metadata[metadataSession].(*clientSession); ok {
		return s, nil
	}
	cfg, err := getConfig(c)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	durable, err := durableStore(cfg)
	if err != nil {
		return nil, err
	}
	// The jar makes the client behave like a browser, which is what the API's
	// CSRF protection expects.
	jar, err := cookiejar.New(
		&cookiejar.Options{PublicSuffixList: publicsuffix.List},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error creating cookie jar")
	}
	navigator := &terminalNavigator{
		out:    c.App.Writer,
		browse: openBrowser,
	}
	manager := session.NewManager(
		cfg.APIAddress,
		storage.Backends{
			Durable:   durable,
			Ephemeral: storage.NewMemoryStore(),
		},
		&session.ManagerOptions{
			AllowInsecure: cfg.Insecure,
			Jar:           jar,
			Navigator:     navigator,
		},
	)
	client := api.NewClient(
		cfg.APIAddress,
		manager,
		&api.ClientOptions{FrontendAddress: cfg.FrontendAddress},
	)
	navigator.refresh = func(ctx context.Context) error {
		_, err := client.Health().Check(ctx)
		return err
	}
	s := &clientSession{
		config:    cfg,
		manager:   manager,
		client:    client,
		navigator: navigator,
	}
	c.App.Metadata[metadataSession] = s
	return s, nil
}

func durableStore(cfg config) (storage.Store, error) {
	if cfg.SessionStore != sessionStoreRedis {
		glog.V(1).Infof("remembering sessions in %s", cfg.sessionFile())
		return storage.NewFileStore(cfg.sessionFile()), nil
	}
	redisConfig, err := redis.GetConfig()
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof(
		"remembering sessions in redis at %s:%d",
		redisConfig.Host,
		redisConfig.Port,
	)
	return storage.NewRedisStore(redisConfig.Client(), redisConfig.Prefix), nil
}

func inShell(c *cli.Context) bool {
	inShell, _ := c.App.Metadata[metadataShell].(bool)
	return inShell
}
