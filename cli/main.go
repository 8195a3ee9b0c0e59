package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gamerecs/gamerecs/internal/signals"
	"github.com/gamerecs/gamerecs/internal/version"
	"github.com/golang/glog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	err := app.RunContext(signals.Context(), os.Args)
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", color.RedString("%s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "gamerecs"
	app.Usage = "Discover, track and rate games from your terminal"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage:   "Address of the GameRecs API server",
			EnvVars: []string{"GAMERECS_API_ADDRESS"},
		},
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
			EnvVars: []string{"GAMERECS_INSECURE"},
		},
		&cli.IntFlag{
			Name:  flagVerbose,
			Usage: "Log diagnostics at the specified verbosity (0-2) to stderr",
		},
	}
	app.Before = configureLogging
	app.Commands = []*cli.Command{
		gamesCommand,
		healthCommand,
		libraryCommand,
		loginCommand,
		logoutCommand,
		profileCommand,
		registerCommand,
		shellCommand,
		verifyCommand,
		whoamiCommand,
	}
	app.Metadata = map[string]interface{}{}
	return app
}

func configureLogging(c *cli.Context) error {
	verbosity := c.Int(flagVerbose)
	if verbosity <= 0 {
		return nil
	}
	if err := flag.Set("logtostderr", "true"); err != nil {
		return err
	}
	return flag.Set("v", fmt.Sprintf("%d", verbosity))
}
