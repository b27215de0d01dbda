package main

import "github.com/urfave/cli/v2"

const (
	flagAPIURL   = "api-url"
	flagCategory = "category"
	flagComments = "comments"
	flagEmail    = "email"
	flagKeyword  = "keyword"
	flagNickname = "nickname"
	flagOutput   = "output"
	flagPage     = "page"
	flagPassword = "password"
	flagRedirect = "redirect"
	flagSize     = "size"
	flagStore    = "store"
	flagType     = "type"
	flagUnread   = "unread"
	flagYes      = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Return output in another format. Supported formats: table, yaml, json",
		Value:   "table",
	}
	cliFlagPassword = &cli.StringFlag{
		Name:    flagPassword,
		Aliases: []string{"p"},
		Usage:   "Specify the password non-interactively",
	}
)
