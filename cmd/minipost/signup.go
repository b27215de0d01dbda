package main

import (
	"fmt"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func signup(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("signup requires one argument-- a username")
	}
	username := c.Args().First()

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	nickname, err := promptInput(c.String(flagNickname), "Nickname")
	if err != nil {
		return err
	}
	email, err := promptInput(c.String(flagEmail), "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.String(flagPassword), "Password")
	if err != nil {
		return err
	}

	err = a.Client().Signup(c.Context, blogsdk.SignupRequest{
		Username: username,
		Password: password,
		Nickname: nickname,
		Email:    email,
	})
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	fmt.Printf("Account %q created.\n", username)
	return nil
}
