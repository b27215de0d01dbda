package main

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func categoryList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("category list requires no arguments")
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

	categories, err := blogsdk.NewCategoryCache(a.Client()).Get(c.Context, false)
	if err != nil {
		return errors.New(blogsdk.ErrorMessage(err))
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	if done, err := printStructured(output, "category list", categories); done {
		return err
	}

	table := uitable.New()
	table.AddRow("ID", "NAME")
	addCategoryRows(table, categories, 0)
	fmt.Println(table)
	return nil
}

func addCategoryRows(table *uitable.Table, nodes []blogsdk.Category, depth int) {
	for _, node := range nodes {
		table.AddRow(node.ID, strings.Repeat("  ", depth)+node.Name)
		addCategoryRows(table, node.Children, depth+1)
	}
}
