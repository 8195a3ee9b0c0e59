package main

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"
	"github.com/gamerecs/gamerecs/sdk/session"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var shellCommand = &cli.Command{
	Name: "shell",
	Usage: "Run commands interactively; a session that isn't remembered " +
		"lasts until the shell exits",
	Action: shell,
}

func shell(c *cli.Context) error {
	if inShell(c) {
		return errors.New("already in a gamerecs shell")
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	c.App.Metadata[metadataShell] = true
	defer delete(c.App.Metadata, metadataShell)

	prompt := "gamerecs> "
	unsubscribe := s.manager.User().Subscribe(func(user *session.User) {
		if user == nil {
			prompt = "gamerecs> "
			return
		}
		prompt = fmt.Sprintf("gamerecs (%s)> ", user.Username)
	})
	defer unsubscribe()

	fmt.Fprintln(
		c.App.Writer,
		"GameRecs shell. Type `help` for commands or `exit` to quit.",
	)
	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(c.App.Writer, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.App.Writer)
			break
		}
		args, err := shellquote.Split(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.App.ErrWriter, color.RedString("%s", err))
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			break
		}
		if err := c.App.RunContext(
			c.Context,
			append([]string{c.App.Name}, args...),
		); err != nil {
			fmt.Fprintln(c.App.ErrWriter, color.RedString("%s", err))
		}
		if c.Context.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "error reading input")
	}
	return nil
}
