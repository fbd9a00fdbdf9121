package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopstream/storefront-gateway/internal/gateway"
)

func init() {
	var password string

	loginCmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and persist the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			user, err := e.session.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			user, err := e.session.Register(cmd.Context(), gateway.RegisterInput{
				Email:    args[0],
				Password: password,
				Name:     name,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", user.Email)
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	registerCmd.Flags().String("name", "", "display name")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			user := e.session.User()
			if user == nil {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("%s (%s) role=%s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
