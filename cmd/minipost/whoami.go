package main

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// whoami reports the locally stored identity without calling the server.
func whoami(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("whoami requires no arguments")
	}

	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	session := a.Session()
	if !session.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	id := session.Identity()
	if done, err := printStructured(output, "whoami", id); done {
		return err
	}

	table := uitable.New()
	table.AddRow("USERNAME", "NICKNAME", "ROLE", "EXPIRES")
	table.AddRow(
		id.Username,
		id.Nickname,
		id.Role,
		session.ExpiresAt().Local().Format(time.RFC1123),
	)
	fmt.Println(table)
	return nil
}
