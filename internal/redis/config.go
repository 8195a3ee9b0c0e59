// Package redis connects to the Redis database that shares remembered
// sessions between machines.
package redis

import (
	"crypto/tls"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	envconfigPrefix = "REDIS"

	// DefaultPrefix namespaces session keys when REDIS_PREFIX is not set.
	DefaultPrefix = "gamerecs:session"
)

// Config represents common configuration options for a Redis connection.
type Config struct {
	Host       string `envconfig:"HOST" required:"true"`
	Port       int    `envconfig:"PORT" default:"6379"`
	Password   string `envconfig:"PASSWORD"`
	DB         int    `envconfig:"DB"`
	EnableTLS  bool   `envconfig:"ENABLE_TLS"`
	Prefix     string `envconfig:"PREFIX" default:"gamerecs:session"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"5"`
}

// GetConfig reads Redis connection settings from REDIS_* environment
// variables.
func GetConfig() (Config, error) {
	c := Config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}
	return c, nil
}

// Client returns a connection to the Redis database described by the
// configuration. The connection is established lazily.
func (c Config) Client() *redis.Client {
	redisOpts := &redis.Options{
		Addr:       fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password:   c.Password,
		DB:         c.DB,
		MaxRetries: c.MaxRetries,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return redis.NewClient(redisOpts)
}
