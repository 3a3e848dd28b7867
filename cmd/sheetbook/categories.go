package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			categories, err := lg.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'sheetbook categories add' to create one."))
				return nil
			}

			w := newTable()
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"))
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Type)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var categoryType string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			category, err := lg.AddCategory(ctx, args[0], model.CategoryType(categoryType))
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Added category " + category.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryType, "type", "Expense", "category type (Income or Expense)")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Remove a category row. Transactions that used it keep the category
name they were written with; nothing cascades.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			if err := lg.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Deleted category " + args[0]))
			return nil
		},
	}
}
