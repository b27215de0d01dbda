package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/minipost/internal/client/app"
	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "minipost"
	cliApp.Usage = "Read and manage your minipost blog account from the terminal"
	cliApp.Version = app.BuildVersion
	cliApp.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagAPIURL,
			Usage:   "Base URL of the minipost API server",
			EnvVars: []string{"MINIPOST_API_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    flagStore,
			Usage:   "Credential store: file, sqlite or memory",
			EnvVars: []string{"MINIPOST_CREDENTIAL_STORE"},
		},
	}
	cliApp.Commands = []*cli.Command{
		{
			Name:      "login",
			Usage:     "Log in to minipost",
			ArgsUsage: "[USERNAME]",
			Flags: []cli.Flag{
				cliFlagPassword,
				&cli.StringFlag{
					Name:  flagRedirect,
					Usage: "Location to continue at after logging in",
					Value: blogsdk.LocationHome,
				},
			},
			Action: login,
		},
		{
			Name:   "logout",
			Usage:  "Log out of minipost",
			Action: logout,
		},
		{
			Name:      "signup",
			Usage:     "Create a minipost account",
			ArgsUsage: "USERNAME",
			Flags: []cli.Flag{
				cliFlagPassword,
				&cli.StringFlag{
					Name:    flagNickname,
					Aliases: []string{"n"},
					Usage:   "Nickname shown on posts and comments",
				},
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "Email address for the account",
				},
			},
			Action: signup,
		},
		{
			Name:   "whoami",
			Usage:  "Show the user of the stored session",
			Flags:  []cli.Flag{cliFlagOutput},
			Action: whoami,
		},
		{
			Name:  "profile",
			Usage: "Manage your account",
			Subcommands: []*cli.Command{
				{
					Name:   "show",
					Usage:  "Show your profile",
					Flags:  []cli.Flag{cliFlagOutput},
					Action: profileShow,
				},
				{
					Name:      "nickname",
					Usage:     "Change your nickname",
					ArgsUsage: "NICKNAME",
					Action:    profileNickname,
				},
				{
					Name:   "password",
					Usage:  "Change your password",
					Flags:  []cli.Flag{cliFlagPassword},
					Action: profilePassword,
				},
				{
					Name:  "withdraw",
					Usage: "Delete your account",
					Flags: []cli.Flag{
						cliFlagPassword,
						&cli.BoolFlag{
							Name:    flagYes,
							Aliases: []string{"y"},
							Usage:   "Skip the confirmation prompt",
						},
					},
					Action: withdraw,
				},
			},
		},
		{
			Name:  "check",
			Usage: "Check whether a username or nickname is available",
			Subcommands: []*cli.Command{
				{
					Name:      "username",
					Usage:     "Check a username",
					ArgsUsage: "USERNAME",
					Action:    checkUsername,
				},
				{
					Name:      "nickname",
					Usage:     "Check a nickname",
					ArgsUsage: "NICKNAME",
					Action:    checkNickname,
				},
			},
		},
		{
			Name:    "notification",
			Aliases: []string{"notifications"},
			Usage:   "Manage notifications",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List notifications",
					Flags: []cli.Flag{
						cliFlagOutput,
						&cli.BoolFlag{
							Name:    flagUnread,
							Aliases: []string{"u"},
							Usage:   "Only show unread notifications",
						},
					},
					Action: notificationList,
				},
				{
					Name:   "unread",
					Usage:  "Print the number of unread notifications",
					Action: notificationUnread,
				},
				{
					Name:      "read",
					Usage:     "Mark a notification as read",
					ArgsUsage: "ID",
					Action:    notificationRead,
				},
				{
					Name:   "read-all",
					Usage:  "Mark all notifications as read",
					Action: notificationReadAll,
				},
			},
		},
		{
			Name:    "category",
			Aliases: []string{"categories"},
			Usage:   "Browse categories",
			Subcommands: []*cli.Command{
				{
					Name:   "list",
					Usage:  "List the category tree",
					Flags:  []cli.Flag{cliFlagOutput},
					Action: categoryList,
				},
			},
		},
		{
			Name:    "post",
			Aliases: []string{"posts"},
			Usage:   "Browse posts",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List posts",
					Flags: []cli.Flag{
						cliFlagOutput,
						&cli.IntFlag{
							Name:  flagPage,
							Usage: "Page number, starting at 1",
							Value: 1,
						},
						&cli.IntFlag{
							Name:  flagSize,
							Usage: "Posts per page",
							Value: blogsdk.DefaultPageSize,
						},
						&cli.Int64Flag{
							Name:    flagCategory,
							Aliases: []string{"c"},
							Usage:   "Only list posts in this category ID",
						},
						&cli.StringFlag{
							Name:    flagKeyword,
							Aliases: []string{"k"},
							Usage:   "Search keyword",
						},
						&cli.StringFlag{
							Name:    flagType,
							Aliases: []string{"t"},
							Usage:   "Search scope: all, title or content",
							Value:   blogsdk.SearchAll,
						},
					},
					Action: postList,
				},
				{
					Name:      "get",
					Usage:     "Show a post",
					ArgsUsage: "ID",
					Flags: []cli.Flag{
						cliFlagOutput,
						&cli.BoolFlag{
							Name:  flagComments,
							Usage: "Include comments",
						},
					},
					Action: postGet,
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", err)
		stop()
		os.Exit(1)
	}
}
