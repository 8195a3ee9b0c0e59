package redis

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func(t *testing.T)
		assertions func(*testing.T, Config, error)
	}{
		{
			name:  "host not set",
			setup: func(*testing.T) {},
			assertions: func(t *testing.T, _ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "error getting redis configuration")
			},
		},
		{
			name: "defaults",
			setup: func(t *testing.T) {
				t.Setenv("REDIS_HOST", "redis.example.com")
			},
			assertions: func(t *testing.T, config Config, err error) {
				require.NoError(t, err)
				require.Equal(
					t,
					Config{
						Host:       "redis.example.com",
						Port:       6379,
						Prefix:     DefaultPrefix,
						MaxRetries: 5,
					},
					config,
				)
				require.Equal(t, "redis.example.com:6379", config.Client().Options().Addr)
			},
		},
		{
			name: "everything set",
			setup: func(t *testing.T) {
				t.Setenv("REDIS_HOST", "localhost")
				t.Setenv("REDIS_PORT", "6380")
				t.Setenv("REDIS_PASSWORD", "secret")
				t.Setenv("REDIS_DB", "2")
				t.Setenv("REDIS_ENABLE_TLS", "true")
				t.Setenv("REDIS_PREFIX", "team")
			},
			assertions: func(t *testing.T, config Config, err error) {
				require.NoError(t, err)
				options := config.Client().Options()
				require.Equal(t, "localhost:6380", options.Addr)
				require.Equal(t, "secret", options.Password)
				require.Equal(t, 2, options.DB)
				require.NotNil(t, options.TLSConfig)
				require.Equal(t, "localhost", options.TLSConfig.ServerName)
				require.Equal(t, "team", config.Prefix)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			clearEnv(t)
			testCase.setup(t)
			config, err := GetConfig()
			testCase.assertions(t, config, err)
		})
	}
}

// clearEnv unsets every variable GetConfig could read. envconfig also falls
// back to the unprefixed names.
func clearEnv(t *testing.T) {
	for _, name := range []string{
		"HOST",
		"PORT",
		"PASSWORD",
		"DB",
		"ENABLE_TLS",
		"PREFIX",
		"MAX_RETRIES",
	} {
		for _, key := range []string{name, "REDIS_" + name} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}
