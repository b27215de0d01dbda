package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func logout(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	// Server-side revocation is best effort; local credentials are always
	// removed.
	a.Client().Logout(c.Context)

	fmt.Println("Logout was successful.")
	return nil
}
