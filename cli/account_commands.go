package main

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gamerecs/gamerecs/sdk/session"
	"github.com/gamerecs/gamerecs/sdk/validation"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Create a GameRecs account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagUsername,
			Aliases: []string{"u"},
			Usage:   "Username for the new account; prompted for if not set",
		},
		&cli.StringFlag{
			Name:    flagEmail,
			Aliases: []string{"e"},
			Usage:   "Email address for the new account; prompted for if not set",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Password for the new account; prompted for if not set",
		},
		&cli.StringFlag{
			Name:  flagBio,
			Usage: "A short bio (optional, at most 500 characters)",
		},
		&cli.StringFlag{
			Name:  flagPicture,
			Usage: "URL of a .png, .jpg, .jpeg or .gif profile picture (optional)",
		},
	},
	Action: register,
}

var verifyCommand = &cli.Command{
	Name:      "verify",
	Usage:     "Verify an email address with the token from a verification email",
	ArgsUsage: "[token]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagToken,
			Aliases: []string{"t"},
			Usage:   "The verification token",
		},
	},
	Action: verify,
}

func register(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	if err = s.manager.RequireAnonymous(c.Context); err != nil {
		return err
	}

	form := &validation.RegistrationForm{
		Username:          c.String(flagUsername),
		Email:             c.String(flagEmail),
		Password:          c.String(flagPassword),
		Bio:               c.String(flagBio),
		ProfilePictureURL: c.String(flagPicture),
	}
	if err = promptForRegistration(form); err != nil {
		return err
	}
	if err = validation.New().Validate(form); err != nil {
		return err
	}

	result, err := s.manager.RegisterUser(
		c.Context,
		session.Registration{
			Username:          form.Username,
			Email:             form.Email,
			Password:          form.Password,
			Bio:               form.Bio,
			ProfilePictureURL: form.ProfilePictureURL,
		},
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(
		c.App.Writer,
		"\nRegistration successful! Welcome, %s. Please check %s to verify your "+
			"email address, then log in with `gamerecs login`.\n",
		result.Username,
		result.Email,
	)
	return nil
}

// promptForRegistration asks for whatever required fields were not given as
// flags. A password given as a flag is its own confirmation.
func promptForRegistration(form *validation.RegistrationForm) error {
	if form.Password != "" {
		form.ConfirmPassword = form.Password
	}
	var questions []*survey.Question
	if strings.TrimSpace(form.Username) == "" {
		questions = append(questions, &survey.Question{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username:"},
		})
	}
	if strings.TrimSpace(form.Email) == "" {
		questions = append(questions, &survey.Question{
			Name:   "email",
			Prompt: &survey.Input{Message: "Email:"},
		})
	}
	if form.Password == "" {
		questions = append(
			questions,
			&survey.Question{
				Name:   "password",
				Prompt: &survey.Password{Message: "Password:"},
			},
			&survey.Question{
				Name:   "confirmPassword",
				Prompt: &survey.Password{Message: "Confirm password:"},
			},
		)
	}
	if len(questions) == 0 {
		return nil
	}
	if !isInteractive() {
		return errors.New(
			"username, email and password are required when not running " +
				"interactively",
		)
	}
	answers := struct {
		Username        string
		Email           string
		Password        string
		ConfirmPassword string `survey:"confirmPassword"`
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return errors.Wrap(err, "error reading registration details")
	}
	if answers.Username != "" {
		form.Username = answers.Username
	}
	if answers.Email != "" {
		form.Email = answers.Email
	}
	if answers.Password != "" {
		form.Password = answers.Password
		form.ConfirmPassword = answers.ConfirmPassword
	}
	return nil
}

func verify(c *cli.Context) error {
	token := c.String(flagToken)
	if token == "" {
		token = c.Args().First()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("Invalid verification link. Please request a new one.")
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	result, err := s.manager.VerifyEmail(c.Context, token)
	if err != nil {
		return err
	}
	if !result.Verified {
		message := result.Message
		if message == "" {
			message = "Email verification failed"
		}
		return errors.New(message)
	}
	fmt.Fprintln(
		c.App.Writer,
		"\nYour email has been verified. You can now log in with `gamerecs login`.",
	)
	return nil
}
