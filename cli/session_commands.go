package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gamerecs/gamerecs/sdk/session"
	"github.com/gamerecs/gamerecs/sdk/validation"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to GameRecs",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagUsername,
			Aliases: []string{"u"},
			Usage:   "Log in as the specified user; prompted for if not set",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Log in with the specified password; prompted for if not set",
		},
		&cli.BoolFlag{
			Name:    flagRememberMe,
			Aliases: []string{"r"},
			Usage: "Stay logged in after gamerecs exits; without this, the " +
				"session ends with the process or shell",
		},
	},
	Action: login,
	Subcommands: []*cli.Command{
		{
			Name:  "google",
			Usage: "Log in with a Google account",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagNoBrowser,
					Usage: "Print the authorization URL instead of opening a browser",
				},
				&cli.DurationFlag{
					Name:  flagTimeout,
					Usage: "Give up waiting for the login to complete after this long",
					Value: 5 * time.Minute,
				},
			},
			Action: loginGoogle,
		},
	},
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of GameRecs",
	Action: logout,
}

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show the logged in user",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: whoami,
}

func login(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAnonymous(c.Context); err != nil {
		return err
	}

	form := &validation.LoginForm{
		Username:   c.String(flagUsername),
		Password:   c.String(flagPassword),
		RememberMe: c.Bool(flagRememberMe),
	}
	if err = promptForCredentials(form); err != nil {
		return err
	}
	if err = validation.New().Validate(form); err != nil {
		return err
	}

	user, err := s.manager.Login(
		c.Context,
		session.LoginRequest{
			Username:   form.Username,
			Password:   form.Password,
			RememberMe: form.RememberMe,
		},
	)
	if err != nil {
		return err
	}
	if err = saveConfig(
		s.config.Home,
		savedConfig{APIAddress: s.config.APIAddress},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Fprintf(c.App.Writer, "\nWelcome, %s! You are logged in.\n", user.Username)
	if !user.EmailVerified {
		fmt.Fprintln(
			c.App.Writer,
			"Your email address is not verified yet. Please check your inbox.",
		)
	}
	if !form.RememberMe && !inShell(c) {
		fmt.Fprintln(
			c.App.Writer,
			"\nThis session is not remembered and ends when this command exits. "+
				"Use --remember-me, or log in from `gamerecs shell`, to keep it.",
		)
	}
	return nil
}

func promptForCredentials(form *validation.LoginForm) error {
	var questions []*survey.Question
	if strings.TrimSpace(form.Username) == "" {
		questions = append(questions, &survey.Question{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username:"},
		})
	}
	if form.Password == "" {
		questions = append(questions, &survey.Question{
			Name:   "password",
			Prompt: &survey.Password{Message: "Password:"},
		})
	}
	if len(questions) == 0 {
		return nil
	}
	if !isInteractive() {
		return errors.New(
			"username and password are required when not running interactively",
		)
	}
	answers := struct {
		Username string
		Password string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return errors.Wrap(err, "error reading credentials")
	}
	if answers.Username != "" {
		form.Username = answers.Username
	}
	if answers.Password != "" {
		form.Password = answers.Password
	}
	return nil
}

func loginGoogle(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAnonymous(c.Context); err != nil {
		return err
	}
	if c.Bool(flagNoBrowser) {
		s.navigator.browse = nil
	}

	fmt.Fprintf(
		c.App.Writer,
		"Waiting for the login to complete on %s...\n",
		s.config.CallbackAddress,
	)
	outcome, err := awaitOAuthOutcome(
		c.Context,
		s.config.CallbackAddress,
		c.Duration(flagTimeout),
		func() error {
			return s.manager.InitiateGoogleLogin(c.Context)
		},
	)
	if err != nil {
		return err
	}
	if err = outcome.err(); err != nil {
		return err
	}

	var user session.User
	if outcome.Token != "" {
		user, err = s.manager.HandleGoogleToken(c.Context, outcome.Token)
	} else {
		user, err = s.manager.HandleGoogleCallback(c.Context, outcome.Code)
	}
	if err != nil {
		return err
	}
	if err = saveConfig(
		s.config.Home,
		savedConfig{APIAddress: s.config.APIAddress},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}
	fmt.Fprintf(c.App.Writer, "\nWelcome, %s! You are logged in.\n", user.Username)
	s.navigator.Redirect(c.Context, session.ViewProfile)
	return nil
}

func logout(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err := s.manager.Logout(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "\nYou have been logged out.")
	return nil
}

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if !s.manager.IsAuthenticated() {
		fmt.Fprintln(c.App.Writer, "You are not logged in.")
		return nil
	}
	user := s.manager.CurrentUser()
	if user == nil {
		fmt.Fprintln(
			c.App.Writer,
			"You are logged in, but your user details are unavailable. Log in "+
				"again to restore them.",
		)
		return nil
	}
	return printOutput(
		c.App.Writer,
		output,
		user,
		func() *uitable.Table {
			table := uitable.New()
			table.AddRow("USERNAME", "EMAIL", "VERIFIED", "GOOGLE ID")
			table.AddRow(
				user.Username,
				user.Email,
				user.EmailVerified,
				orNone(user.GoogleID),
			)
			return table
		},
	)
}
