package main

import (
	"fmt"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func login(c *cli.Context) error {
	// Args
	if c.Args().Len() > 1 {
		return errors.New("login accepts at most one argument-- a username")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	username, err := promptInput(c.Args().First(), "Username")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.String(flagPassword), "Password")
	if err != nil {
		return err
	}

	err = a.Client().Login(c.Context, blogsdk.LoginRequest{
		Username: username,
		Password: password,
	}, c.String(flagRedirect))
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	id := a.Session().Identity()
	fmt.Printf("Logged in as %s (%s).\n", id.Username, id.Nickname)
	return nil
}
