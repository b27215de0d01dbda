package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/minipost/internal/client/app"
	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/aussiebroadwan/minipost/pkg/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// getApp loads configuration, applies global flag overrides and restores
// the stored session. The caller must Close the returned application.
func getApp(c *cli.Context) (*app.Application, error) {
	cfg := app.LoadConfig()
	if c.IsSet(flagAPIURL) {
		cfg.APIBaseURL = c.String(flagAPIURL)
	}
	if c.IsSet(flagStore) {
		cfg.CredentialStore = c.String(flagStore)
	}

	a, err := app.New(cfg,
		app.WithNotifier(blogsdk.NotifierFunc(printNotice)),
		app.WithNavigator(blogsdk.NavigatorFunc(printLocation)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error initializing minipost")
	}
	c.Context = slogx.With(c.Context, a.Logger(), "command", c.Command.FullName())
	if err := a.Start(c.Context); err != nil {
		a.Close() // nolint: errcheck
		return nil, errors.Wrap(err, "error restoring session")
	}
	return a, nil
}

func printNotice(_ context.Context, n blogsdk.Notice) {
	fmt.Fprintln(os.Stderr, n.Message)
}

func printLocation(_ context.Context, location string) {
	fmt.Fprintf(os.Stderr, "Continue at %s\n", location)
}

// requireLogin fails fast for commands that need an authenticated session.
func requireLogin(a *app.Application) error {
	if !a.Session().IsLoggedIn() {
		return errors.New("not logged in; run \"minipost login\" first")
	}
	return nil
}
