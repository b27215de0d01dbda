package main

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func checkUsername(c *cli.Context) error {
	return checkAvailability(c, "username", (*blogsdk.SDKClient).CheckDuplicateUsername)
}

func checkNickname(c *cli.Context) error {
	return checkAvailability(c, "nickname", (*blogsdk.SDKClient).CheckDuplicateNickname)
}

func checkAvailability(
	c *cli.Context,
	what string,
	check func(*blogsdk.SDKClient, context.Context, string) (bool, error),
) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.Errorf("check %s requires one argument-- a %s", what, what)
	}
	value := c.Args().First()

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	taken, err := check(a.Client(), c.Context, value)
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	if taken {
		fmt.Printf("The %s %q is already taken.\n", what, value)
	} else {
		fmt.Printf("The %s %q is available.\n", what, value)
	}
	return nil
}
