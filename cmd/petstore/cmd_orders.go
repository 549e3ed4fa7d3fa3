package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"petstore-client/internal/domain/checkout"
)

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage orders",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra no encadena PersistentPreRunE: se llama al del root a mano.
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return requireLogin(cmd.Context(), a)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.api.GetOrders(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List my orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.api.GetUserOrders(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}

	var (
		pet, delivery, pickupDate, recipient string
		quantity                             int
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Order a single pet",
		RunE: func(cmd *cobra.Command, args []string) error {
			order := map[string]any{
				"pet":             json.Number(strings.TrimSpace(pet)),
				"quantity":        quantity,
				"delivery_method": delivery,
				"recipient_name":  recipient,
			}
			if pickupDate != "" {
				if _, err := time.Parse("2006-01-02", pickupDate); err != nil {
					return fmt.Errorf("--pickup-date must be YYYY-MM-DD")
				}
				order["pickup_date"] = pickupDate
			}
			raw, err := a.api.CreateOrder(cmd.Context(), order)
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
	create.Flags().StringVar(&pet, "pet", "", "pet id")
	create.Flags().IntVar(&quantity, "quantity", 1, "quantity")
	create.Flags().StringVar(&delivery, "delivery", string(checkout.DeliveryPickup), "pickup or delivery")
	create.Flags().StringVar(&pickupDate, "pickup-date", "", "pickup date (YYYY-MM-DD)")
	create.Flags().StringVar(&recipient, "recipient", "", "recipient name")
	_ = create.MarkFlagRequired("pet")

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.api.CancelOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}

	cmd.AddCommand(list, mine, create, cancel)
	return cmd
}
