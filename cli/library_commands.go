package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gamerecs/gamerecs/sdk/api"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var libraryCommand = &cli.Command{
	Name:  "library",
	Usage: "Browse your game library",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "List the games in your library",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  flagSort,
					Usage: "Sort games by title or releaseDate",
					Value: string(api.SortByTitle),
				},
				&cli.StringFlag{
					Name:    flagGenre,
					Aliases: []string{"g"},
					Usage:   "Only list games of the specified genre",
				},
				&cli.IntFlag{
					Name:  flagPageSize,
					Usage: "Retrieve this many games at a time",
					Value: api.DefaultPageSize,
				},
				cliFlagOutput,
			},
			Action: libraryList,
		},
	},
}

func libraryList(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	sortBy := api.LibrarySort(c.String(flagSort))
	switch sortBy {
	case api.SortByTitle, api.SortByReleaseDate:
	default:
		return errors.Errorf(
			"unknown sort %q; supported sorts: %s, %s",
			sortBy,
			api.SortByTitle,
			api.SortByReleaseDate,
		)
	}
	pageSize := c.Int(flagPageSize)
	if pageSize <= 0 {
		return errors.Errorf("page size must be positive; got %d", pageSize)
	}

	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAuthenticated(c.Context); err != nil {
		return err
	}

	opts := &api.LibraryPageOptions{
		LibraryListOptions: api.LibraryListOptions{
			SortBy: sortBy,
			Genre:  c.String(flagGenre),
		},
		Size: pageSize,
	}
	for {
		page, err := s.client.Library().GetPage(c.Context, opts)
		if err != nil {
			return err
		}

		if len(page.Games) == 0 {
			fmt.Fprintln(c.App.Writer, "No games found.")
			return nil
		}

		if err = printOutput(
			c.App.Writer,
			output,
			page,
			func() *uitable.Table {
				return gamesTable(page.Games)
			},
		); err != nil {
			return err
		}

		if !page.HasMore() {
			break
		}

		// Exit after one page of output if this isn't a terminal
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			break
		}

		remaining := page.TotalElements -
			int64((page.CurrentPage+1)*page.PageSize)
		var shouldContinue bool
		fmt.Fprintln(c.App.Writer)
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf("%d results remain. Fetch more?", remaining),
			},
			&shouldContinue,
		); err != nil {
			return errors.Wrap(
				err,
				"error confirming if user wishes to continue",
			)
		}
		fmt.Fprintln(c.App.Writer)
		if !shouldContinue {
			break
		}

		opts.Page = page.CurrentPage + 1
	}

	return nil
}

func gamesTable(games []api.Game) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("ID", "TITLE", "RELEASED", "GENRES")
	for _, game := range games {
		table.AddRow(
			game.GameID,
			game.Title,
			orNone(game.ReleaseDate),
			orNone(joinNames(game.Genres)),
		)
	}
	return table
}

func joinNames(genres []api.Genre) string {
	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		names = append(names, genre.Name)
	}
	return strings.Join(names, ", ")
}
