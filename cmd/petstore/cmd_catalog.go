package main

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newPetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Browse pets for sale",
	}

	var category, search, ordering string
	list := &cobra.Command{
		Use:   "list",
		Short: "List pets for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for k, v := range map[string]string{"category": category, "search": search, "ordering": ordering} {
				if v = strings.TrimSpace(v); v != "" {
					params.Set(k, v)
				}
			}
			raw, err := a.api.GetPets(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
	list.Flags().StringVar(&category, "category", "", "category id")
	list.Flags().StringVar(&search, "search", "", "search in name and description")
	list.Flags().StringVar(&ordering, "ordering", "", "price, -price, name or -name")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.api.GetPet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List pet categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.api.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
}
