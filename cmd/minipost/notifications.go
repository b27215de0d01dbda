package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func notificationList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("notification list requires no arguments")
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

	inbox := blogsdk.NewInbox(a.Client())
	if err := inbox.Refresh(c.Context); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	items := inbox.Items()
	if c.Bool(flagUnread) {
		unread := items[:0]
		for _, n := range items {
			if !n.IsRead {
				unread = append(unread, n)
			}
		}
		items = unread
	}

	if len(items) == 0 {
		fmt.Println("No notifications found.")
		return nil
	}

	if done, err := printStructured(output, "notification list", items); done {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "TYPE", "CONTENT", "AGE", "READ?")
	for _, n := range items {
		table.AddRow(n.ID, n.Type, n.Content, age(n.CreatedAt), n.IsRead)
	}
	fmt.Println(table)
	fmt.Printf("\n%d unread\n", inbox.Unread())
	return nil
}

func notificationUnread(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("notification unread requires no arguments")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	count, err := a.Client().UnreadCount(c.Context)
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}
	fmt.Println(count)
	return nil
}

func notificationRead(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("notification read requires one argument-- a notification ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return errors.Errorf("invalid notification ID %q", c.Args().First())
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	if err := a.Client().MarkNotificationRead(c.Context, id); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}
	fmt.Printf("Notification %d marked as read.\n", id)
	return nil
}

func notificationReadAll(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("notification read-all requires no arguments")
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck
	if err := requireLogin(a); err != nil {
		return err
	}

	if err := a.Client().MarkAllNotificationsRead(c.Context); err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}
	fmt.Println("All notifications marked as read.")
	return nil
}

// age renders how long ago t was, coarsely.
func age(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
