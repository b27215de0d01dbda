package main

import (
	"fmt"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func profileShow(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("profile show requires no arguments")
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
	if err := requireLogin(a); err != nil {
		return err
	}

	user, err := a.Client().FetchProfile(c.Context)
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	if done, err := printStructured(output, "profile show", user); done {
		return err
	}

	table := uitable.New()
	table.AddRow("ID", "USERNAME", "NICKNAME", "EMAIL", "ROLE", "SOCIAL?")
	table.AddRow(
		user.ID,
		user.Username,
		user.Nickname,
		user.Email,
		user.Role,
		user.IsSocialUser,
	)
	fmt.Println(table)
	return nil
}

func profileNickname(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("profile nickname requires one argument-- the new nickname")
	}
	nickname := c.Args().First()

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	if err := a.Client().UpdateNickname(c.Context, nickname); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	fmt.Printf("Nickname changed to %q.\n", nickname)
	return nil
}

func profilePassword(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("profile password requires no arguments")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	current, err := promptPassword(c.String(flagPassword), "Current password")
	if err != nil {
		return err
	}
	next, err := promptPassword("", "New password")
	if err != nil {
		return err
	}
	again, err := promptPassword("", "Repeat new password")
	if err != nil {
		return err
	}
	if next != again {
		return errors.New("new passwords do not match")
	}

	if err := a.Client().UpdatePassword(c.Context, current, next); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	fmt.Println("Password changed.")
	return nil
}

func withdraw(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("withdraw requires no arguments")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	ok, err := confirmed(c, "This will permanently delete your account. Are you sure?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}
	password, err := promptPassword(c.String(flagPassword), "Password")
	if err != nil {
		return err
	}

	if err := a.Client().Withdraw(c.Context, password); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	fmt.Println("Account deleted.")
	return nil
}
