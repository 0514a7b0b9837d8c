package main

import (
	"fmt"

	"github.com/jrsteele09/go-admin-portal/users"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	flagEmail    string
	flagPassword string
	flagName     string
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Probe the backend for an existing session and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		defer store.Close()

		printSnapshot(store.CheckSession(cmd.Context()))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print the resolved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result := store.Login(cmd.Context(), flagEmail, flagPassword)
		if !result.Success {
			return errors.Errorf("login failed: %s", result.Message)
		}
		printSnapshot(store.Snapshot())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account, sign in, and print the resolved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := users.ValidatePasswordStrength(flagPassword); err != nil {
			return errors.Wrap(err, "password rejected")
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result := store.Register(cmd.Context(), users.RegisterRequest{
			Name:            flagName,
			Email:           flagEmail,
			Password:        flagPassword,
			PasswordConfirm: flagPassword,
		})
		if !result.Success {
			return errors.Errorf("registration failed: %s", result.Message)
		}
		printSnapshot(store.Snapshot())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign in, then sign out again (round-trip smoke test)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result := store.Login(cmd.Context(), flagEmail, flagPassword)
		if !result.Success {
			return errors.Errorf("login failed: %s", result.Message)
		}

		store.Logout(cmd.Context())
		fmt.Println("signed out")
		printSnapshot(store.Snapshot())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd, logoutCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "account email")
		c.Flags().StringVar(&flagPassword, "password", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVar(&flagName, "name", "", "display name")
	_ = registerCmd.MarkFlagRequired("name")
}
