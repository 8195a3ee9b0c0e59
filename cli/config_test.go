package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runWithContext runs an app whose only command hands its context to fn.
func runWithContext(t *testing.T, args []string, fn func(*cli.Context)) {
	app := newApp()
	app.Commands = []*cli.Command{
		{
			Name: "probe",
			Action: func(c *cli.Context) error {
				fn(c)
				return nil
			},
		},
	}
	require.NoError(t, app.Run(append([]string{"gamerecs"}, args...)))
}

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{
		"GAMERECS_API_ADDRESS",
		"GAMERECS_HOME",
		"GAMERECS_SESSION_STORE",
		"GAMERECS_INSECURE",
		"GAMERECS_FRONTEND_ADDRESS",
		"GAMERECS_CALLBACK_ADDRESS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestGetConfig(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func(t *testing.T, home string)
		args       []string
		assertions func(t *testing.T, home string, cfg config, err error)
	}{
		{
			name:  "defaults",
			setup: func(*testing.T, string) {},
			assertions: func(t *testing.T, home string, cfg config, err error) {
				require.NoError(t, err)
				require.Equal(t, defaultAPIAddress, cfg.APIAddress)
				require.Equal(t, sessionStoreFile, cfg.SessionStore)
				require.Equal(t, "localhost:4200", cfg.CallbackAddress)
				require.False(t, cfg.Insecure)
				require.Equal(t, filepath.Join(home, "session.json"), cfg.sessionFile())
			},
		},
		{
			name: "saved address",
			setup: func(t *testing.T, home string) {
				require.NoError(
					t,
					saveConfig(home, savedConfig{APIAddress: "https://saved.example.com"}),
				)
			},
			assertions: func(t *testing.T, _ string, cfg config, err error) {
				require.NoError(t, err)
				require.Equal(t, "https://saved.example.com", cfg.APIAddress)
			},
		},
		{
			name: "environment overrides saved address",
			setup: func(t *testing.T, home string) {
				require.NoError(
					t,
					saveConfig(home, savedConfig{APIAddress: "https://saved.example.com"}),
				)
				t.Setenv("GAMERECS_API_ADDRESS", "https://env.example.com")
				t.Setenv("GAMERECS_INSECURE", "true")
			},
			assertions: func(t *testing.T, _ string, cfg config, err error) {
				require.NoError(t, err)
				require.Equal(t, "https://env.example.com", cfg.APIAddress)
				require.True(t, cfg.Insecure)
			},
		},
		{
			name: "flag overrides environment",
			setup: func(t *testing.T, _ string) {
				t.Setenv("GAMERECS_API_ADDRESS", "https://env.example.com")
			},
			args: []string{"--server", "https://flag.example.com", "-k"},
			assertions: func(t *testing.T, _ string, cfg config, err error) {
				require.NoError(t, err)
				require.Equal(t, "https://flag.example.com", cfg.APIAddress)
				require.True(t, cfg.Insecure)
			},
		},
		{
			name: "unknown session store",
			setup: func(t *testing.T, _ string) {
				t.Setenv("GAMERECS_SESSION_STORE", "cookies")
			},
			assertions: func(t *testing.T, _ string, _ config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "unknown session store")
			},
		},
		{
			name: "corrupt config file",
			setup: func(t *testing.T, home string) {
				require.NoError(t, os.MkdirAll(home, 0700))
				require.NoError(
					t,
					os.WriteFile(filepath.Join(home, "config"), []byte("{"), 0600),
				)
			},
			assertions: func(t *testing.T, _ string, _ config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "error parsing gamerecs config file")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			clearConfigEnv(t)
			home := filepath.Join(t.TempDir(), ".gamerecs")
			t.Setenv("GAMERECS_HOME", home)
			testCase.setup(t, home)
			args := append(testCase.args, "probe")
			runWithContext(t, args, func(c *cli.Context) {
				cfg, err := getConfig(c)
				testCase.assertions(t, home, cfg, err)
			})
		})
	}
}

func TestGetConfigDefaultHome(t *testing.T) {
	clearConfigEnv(t)
	userHome := t.TempDir()
	t.Setenv("HOME", userHome)
	homedir.DisableCache = true
	defer func() {
		homedir.DisableCache = false
	}()
	runWithContext(t, []string{"probe"}, func(c *cli.Context) {
		cfg, err := getConfig(c)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(userHome, ".gamerecs"), cfg.Home)
	})
}
