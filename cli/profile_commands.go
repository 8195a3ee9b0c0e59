package main

import (
	"github.com/gamerecs/gamerecs/sdk/api"
	"github.com/gamerecs/gamerecs/sdk/validation"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"
)

var profileCommand = &cli.Command{
	Name:  "profile",
	Usage: "Manage your profile",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve your profile",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: profileGet,
		},
		{
			Name:  "edit",
			Usage: "Change your profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagUsername,
					Aliases: []string{"u"},
					Usage:   "Change your username",
				},
				&cli.StringFlag{
					Name:  flagBio,
					Usage: "Change your bio (at most 500 characters)",
				},
				&cli.StringFlag{
					Name:  flagPicture,
					Usage: "Change the URL of your .png, .jpg, .jpeg or .gif profile picture",
				},
				cliFlagOutput,
			},
			Action: profileEdit,
		},
	},
}

func profileGet(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAuthenticated(c.Context); err != nil {
		return err
	}
	profile, err := s.client.Profile().Get(c.Context)
	if err != nil {
		return err
	}
	return printProfile(c, output, profile)
}

func profileEdit(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	if !c.IsSet(flagUsername) && !c.IsSet(flagBio) && !c.IsSet(flagPicture) {
		return cli.ShowSubcommandHelp(c)
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAuthenticated(c.Context); err != nil {
		return err
	}

	// A bio on its own has a dedicated, lighter endpoint
	if c.IsSet(flagBio) && !c.IsSet(flagUsername) && !c.IsSet(flagPicture) {
		bio := c.String(flagBio)
		if err = validation.New().ValidateBio(bio); err != nil {
			return err
		}
		profile, err := s.client.Profile().UpdateBio(c.Context, bio)
		if err != nil {
			return err
		}
		return printProfile(c, output, profile)
	}

	current, err := s.client.Profile().Get(c.Context)
	if err != nil {
		return err
	}
	form := &validation.ProfileForm{
		Username:          current.Username,
		ProfilePictureURL: current.ProfilePictureURL,
		Bio:               current.Bio,
	}
	if c.IsSet(flagUsername) {
		form.Username = c.String(flagUsername)
	}
	if c.IsSet(flagBio) {
		form.Bio = c.String(flagBio)
	}
	if c.IsSet(flagPicture) {
		form.ProfilePictureURL = c.String(flagPicture)
	}
	if err = validation.New().Validate(form); err != nil {
		return err
	}
	profile, err := s.client.Profile().Update(
		c.Context,
		api.ProfileUpdate{
			Username:          form.Username,
			ProfilePictureURL: form.ProfilePictureURL,
			Bio:               form.Bio,
		},
	)
	if err != nil {
		return err
	}
	return printProfile(c, output, profile)
}

func printProfile(c *cli.Context, output string, profile api.Profile) error {
	return printOutput(
		c.App.Writer,
		output,
		profile,
		func() *uitable.Table {
			table := uitable.New()
			table.MaxColWidth = 60
			table.Wrap = true
			table.AddRow("USERNAME:", profile.Username)
			table.AddRow("EMAIL:", profile.Email)
			table.AddRow("VERIFIED:", profile.EmailVerified)
			table.AddRow("JOINED:", orNone(profile.JoinDate))
			table.AddRow("GAMES IN LIBRARY:", profile.GamesInLibrary)
			table.AddRow("GAMES RATED:", profile.GamesRated)
			table.AddRow("PICTURE:", orNone(profile.ProfilePictureURL))
			table.AddRow("BIO:", orNone(profile.Bio))
			return table
		},
	)
}
