package main

import (
	"sort"

	"github.com/gamerecs/gamerecs/sdk/api"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var healthCommand = &cli.Command{
	Name:  "health",
	Usage: "Check the health of the GameRecs services",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: health,
}

func health(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	h, err := s.client.Health().Check(c.Context)
	if err != nil {
		return err
	}
	if err = printOutput(
		c.App.Writer,
		output,
		h,
		func() *uitable.Table {
			names := make([]string, 0, len(h.Components))
			for name := range h.Components {
				names = append(names, name)
			}
			sort.Strings(names)
			table := uitable.New()
			table.AddRow("COMPONENT", "STATUS", "ERROR")
			for _, name := range names {
				component := h.Components[name]
				table.AddRow(name, component.Status, orNone(component.Error))
			}
			table.AddRow("overall", h.Status, "-")
			return table
		},
	); err != nil {
		return err
	}
	if h.Status != api.StatusUp {
		return errors.New("GameRecs is unhealthy")
	}
	return nil
}
