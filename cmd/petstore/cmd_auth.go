package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Long: `Log in against /auth/token/ and store the access and refresh tokens.

The password can also be passed in PETSTORE_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("PETSTORE_PASSWORD")
			}
			if err := a.session.Login(cmd.Context(), a.api, username, password); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "logged out")
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var in struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Password2 = in.Password
			raw, err := a.api.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "username")
	f.StringVar(&in.Email, "email", "", "email")
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Phone, "phone", "", "phone")
	f.StringVar(&in.Password, "password", "", "password (min 8 chars)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(cmd.Context(), a); err != nil {
				return err
			}
			raw, err := a.api.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
}
