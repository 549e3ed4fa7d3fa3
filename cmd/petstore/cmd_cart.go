package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"petstore-client/internal/domain/cart"
	"petstore-client/internal/domain/checkout"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := a.cart.GetCart(cmd.Context())
			if len(items) == 0 {
				fmt.Fprintln(a.out, "cart is empty")
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(a.out, "%s\tx%d\n", it.ItemID, it.Quantity)
			}
			fmt.Fprintf(a.out, "total\t%d\n", cart.Total(items))
			return nil
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <pet-id>",
		Short: "Add a pet to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cart.AddToCart(cmd.Context(), args[0], quantity)
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")

	remove := &cobra.Command{
		Use:   "remove <pet-id>",
		Short: "Remove a pet from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cart.RemoveFromCart(cmd.Context(), args[0])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cart.ClearCart(cmd.Context())
		},
	}

	cmd.AddCommand(show, add, remove, clearCmd)
	return cmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	var delivery, pickupDate, recipient string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place one order per cart item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(cmd.Context(), a); err != nil {
				return err
			}

			in := checkout.Input{
				DeliveryMethod: checkout.DeliveryMethod(delivery),
				RecipientName:  recipient,
			}
			if pickupDate != "" {
				d, err := time.Parse("2006-01-02", pickupDate)
				if err != nil {
					return fmt.Errorf("--pickup-date must be YYYY-MM-DD")
				}
				in.PickupDate = &d
			}

			res, err := a.checkout.Checkout(cmd.Context(), in)
			for _, o := range res.Orders {
				if perr := a.printJSON(o); perr != nil {
					return perr
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "placed %d order(s)\n", len(res.Orders))
			return nil
		},
	}
	cmd.Flags().StringVar(&delivery, "delivery", string(checkout.DeliveryPickup), "pickup or delivery")
	cmd.Flags().StringVar(&pickupDate, "pickup-date", "", "pickup date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient name")
	return cmd
}
