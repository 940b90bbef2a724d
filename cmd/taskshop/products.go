package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/taskshop/internal/catalog"
	"github.com/nhle/taskshop/internal/model"
	"github.com/nhle/taskshop/internal/money"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "Browse the catalog",
		Long: `Browse the catalog.

Sort keys: price_asc, price_desc, name_asc (default keeps catalog order).

Examples:
  taskshop products list --category Gaming --sort price_asc
  taskshop products list --search wireless --page 2
  taskshop products show 3`,
	}

	cmd.AddCommand(productsListCmd(), productsShowCmd())
	return cmd
}

func productsListCmd() *cobra.Command {
	var (
		search   string
		category string
		sortKey  string
		page     int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sort, err := catalog.ParseSort(sortKey)
			if err != nil {
				return err
			}
			cfg, err := model.LoadConfig(configPath)
			if err != nil {
				return err
			}

			c := catalog.NewSeededStore()
			p := catalog.View(c.List(), catalog.Query{
				Search:   search,
				Category: category,
				Sort:     sort,
				Page:     page,
				PageSize: cfg.Shop.PageSize,
			})

			out := cmd.OutOrStdout()
			if len(p.Items) == 0 {
				fmt.Fprintln(out, "No products found.")
				return nil
			}

			t := table.New().Headers("ID", "NAME", "CATEGORY", "PRICE")
			for _, prod := range p.Items {
				t.Row(prod.ID, prod.Name, prod.Category, money.Rupiah(prod.Price))
			}
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "Page %d of %d (%d products)\n", p.Page, max(p.TotalPages, 1), p.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match name or description")
	cmd.Flags().StringVarP(&category, "category", "c", model.CategoryAll, "Category")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func productsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product and related products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.NewSeededStore()
			p, ok := c.Get(args[0])
			if !ok {
				return fmt.Errorf("product %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s · %s\n\n%s\n", p.Name, p.Category, money.Rupiah(p.Price), p.Description)

			related := c.Related(p.ID, 3)
			if len(related) > 0 {
				fmt.Fprintln(out, "\nRelated:")
				for _, r := range related {
					fmt.Fprintf(out, "  %s  %s  %s\n", r.ID, r.Name, money.Rupiah(r.Price))
				}
			}
			return nil
		},
	}
}
