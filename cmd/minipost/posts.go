package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func postList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("post list requires no arguments")
	}

	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	searchType := c.String(flagType)
	switch searchType {
	case blogsdk.SearchAll, blogsdk.SearchTitle, blogsdk.SearchContent:
	default:
		return errors.Errorf("unknown search type %q", searchType)
	}

	a, err := getApp(c)
	if err != nil {
		return err
	}
	defer a.Close() // nolint: errcheck

	page, err := a.Client().ListPosts(c.Context, blogsdk.ListPostsOptions{
		Page:       c.Int(flagPage) - 1,
		Size:       c.Int(flagSize),
		CategoryID: c.Int64(flagCategory),
		Type:       searchType,
		Keyword:    c.String(flagKeyword),
	})
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	if len(page.Content) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	if done, err := printStructured(output, "post list", page); done {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("ID", "TITLE", "CATEGORY", "AUTHOR", "AGE")
	for _, p := range page.Content {
		table.AddRow(p.ID, p.Title, p.CategoryName, p.AuthorUsername, age(p.CreatedAt.Time))
	}
	fmt.Println(table)
	fmt.Printf("\nPage %d of %d (%d posts)\n", page.PageNumber+1, page.TotalPages, page.TotalElements)
	return nil
}

func postGet(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("post get requires one argument-- a post ID")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return errors.Errorf("invalid post ID %q", c.Args().First())
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

	post, err := a.Client().GetPost(c.Context, id)
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	var comments []blogsdk.Comment
	if c.Bool(flagComments) {
		if comments, err = a.Client().ListComments(c.Context, id); err != nil {
			return errors.New(blogsdk.ErrorMessage(err))
		}
	}

	view := struct {
		*blogsdk.PostDetail
		Comments []blogsdk.Comment `json:"comments,omitempty"`
	}{post, comments}
	if done, err := printStructured(output, "post get", view); done {
		return err
	}

	path := make([]string, 0, len(post.CategoryPath))
	for _, ref := range post.CategoryPath {
		path = append(path, ref.Name)
	}

	table := uitable.New()
	table.AddRow("ID", "TITLE", "CATEGORY", "AUTHOR", "VIEWS", "CREATED")
	table.AddRow(
		post.ID,
		post.Title,
		strings.Join(path, " > "),
		post.AuthorNickname,
		post.ViewCount,
		post.CreatedAt.Local().Format(time.DateTime),
	)
	fmt.Println(table)
	fmt.Printf("\n%s\n", post.Content)

	if len(comments) > 0 {
		fmt.Printf("\nPost %d comments:\n\n", post.ID)
		table = uitable.New()
		table.MaxColWidth = 60
		table.AddRow("ID", "AUTHOR", "AGE", "CONTENT")
		for _, cm := range comments {
			table.AddRow(cm.ID, cm.AuthorUsername, age(cm.CreatedAt.Time), cm.Content)
		}
		fmt.Println(table)
	}
	return nil
}
