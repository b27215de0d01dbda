package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptPassword returns value when set, otherwise asks for a password
// without echo.
func promptPassword(value, message string) (string, error) {
	for value == "" {
		if !interactive() {
			return "", errors.Errorf("%s is required when stdin is not a terminal", message)
		}
		if err := survey.AskOne(&survey.Password{Message: message}, &value); err != nil {
			return "", errors.Wrapf(err, "error reading %s", message)
		}
	}
	return value, nil
}

// promptInput returns value when set, otherwise asks for one line of input.
func promptInput(value, message string) (string, error) {
	for value == "" {
		if !interactive() {
			return "", errors.Errorf("%s is required when stdin is not a terminal", message)
		}
		if err := survey.AskOne(&survey.Input{Message: message}, &value); err != nil {
			return "", errors.Wrapf(err, "error reading %s", message)
		}
	}
	return value, nil
}

func confirmed(c *cli.Context, message string) (bool, error) {
	confirmed := c.Bool(flagYes)
	if confirmed {
		return true, nil
	}
	if !interactive() {
		return false, errors.Errorf("--%s is required when stdin is not a terminal", flagYes)
	}
	if err := survey.AskOne(
		&survey.Confirm{Message: message},
		&confirmed,
	); err != nil {
		return false, errors.Wrap(err, "error confirming action")
	}
	fmt.Println()
	return confirmed, nil
}
