package main

import (
	"fmt"

	"github.com/spf13/cobra"

	nomurahome "github.com/shirwani/chloe-nomura-home"
)

var (
	userFirstName string
	userLastName  string
	userEmail     string
	userPhone     string
	userPassword  string
	userType      string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a storefront account",
	Long: `Create a storefront account directly in the store.

Defaults to an admin account; pass --type customer for a regular one.
The password is salted and hashed before it is stored.`,
	RunE: runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVar(&userFirstName, "first-name", "", "First name")
	createUserCmd.Flags().StringVar(&userLastName, "last-name", "", "Last name")
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Email address (required)")
	createUserCmd.Flags().StringVar(&userPhone, "phone", "", "Phone number")
	createUserCmd.Flags().StringVar(&userPassword, "user-password", "", "Account password (required)")
	createUserCmd.Flags().StringVar(&userType, "type", nomurahome.UserTypeAdmin, "Account type: admin or customer")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("user-password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	if userType != nomurahome.UserTypeAdmin && userType != nomurahome.UserTypeCustomer {
		return fmt.Errorf("unknown account type %q (want admin or customer)", userType)
	}

	ctx := cmd.Context()
	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	u, err := client.Users().RegisterWithType(
		ctx, userFirstName, userLastName, userEmail, userPhone, userPassword, userType,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created %s account %s (%s)\n", u.Type, u.Email, u.ID)
	return nil
}
