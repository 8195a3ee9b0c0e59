package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var gamesCommand = &cli.Command{
	Name:  "games",
	Usage: "Explore the game catalog",
	Subcommands: []*cli.Command{
		{
			Name:      "search",
			Usage:     "Search the game catalog",
			ArgsUsage: "[query]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagQuery,
					Aliases: []string{"q"},
					Usage:   "Search for games matching this query",
				},
				cliFlagOutput,
			},
			Action: gamesSearch,
		},
		{
			Name:      "sync",
			Usage:     "Add games matching a query from IGDB to the catalog",
			ArgsUsage: "[query]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagQuery,
					Aliases: []string{"q"},
					Usage:   "Sync games matching this query",
				},
			},
			Action: gamesSync,
		},
		{
			Name:   "clear-cache",
			Usage:  "Clear the API's cache of IGDB searches (administrators only)",
			Action: gamesClearCache,
		},
	},
}

func queryArg(c *cli.Context) (string, error) {
	query := c.String(flagQuery)
	if query == "" {
		query = strings.Join(c.Args().Slice(), " ")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("a query is required")
	}
	return query, nil
}

func gamesSearch(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	games, err := s.client.Games().Search(c.Context, query)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(c.App.Writer, "No games found.")
		return nil
	}
	return printOutput(
		c.App.Writer,
		output,
		games,
		func() *uitable.Table {
			return gamesTable(games)
		},
	)
}

func gamesSync(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAuthenticated(c.Context); err != nil {
		return err
	}
	result, err := s.client.Games().Sync(c.Context, query)
	if err != nil {
		return err
	}
	fmt.Fprintf(
		c.App.Writer,
		"%s %d games found for %q.\n",
		result.Message,
		len(result.Games),
		query,
	)
	return nil
}

func gamesClearCache(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAuthenticated(c.Context); err != nil {
		return err
	}
	if err = s.client.Games().ClearCache(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "IGDB cache cleared.")
	return nil
}
