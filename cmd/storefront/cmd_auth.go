package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/identity"
	"github.com/marketfoods/storefront/pkg/api"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authConfirm  string
	authRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := app.session.Login(cmd.Context(), authEmail, authPassword)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s).\n", snap.Name, snap.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := app.session.Register(cmd.Context(), identity.RegisterParams{
			Name:            authName,
			Email:           authEmail,
			Password:        authPassword,
			ConfirmPassword: authConfirm,
			Role:            authRole,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s. You are registered as a %s.\n", snap.Name, snap.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.session.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.session.Current(cmd.Context())
		if !snap.LoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("Logged in as %s <%s>, role %s, user id %d.\n",
			snap.Name, snap.Email, snap.Role, snap.UserID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")

	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&authConfirm, "confirm-password", "", "repeat the password")
	registerCmd.Flags().StringVar(&authRole, "role", api.RoleBuyer, "account role: buyer or seller")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
