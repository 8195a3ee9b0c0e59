package main

import "github.com/urfave/cli/v2"

const (
	flagBio        = "bio"
	flagEmail      = "email"
	flagGenre      = "genre"
	flagInsecure   = "insecure"
	flagNoBrowser  = "no-browser"
	flagOutput     = "output"
	flagPageSize   = "page-size"
	flagPassword   = "password"
	flagPicture    = "picture"
	flagQuery      = "query"
	flagRememberMe = "remember-me"
	flagServer     = "server"
	flagSort       = "sort"
	flagTimeout    = "timeout"
	flagToken      = "token"
	flagUsername   = "username"
	flagVerbose    = "verbose"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
)
