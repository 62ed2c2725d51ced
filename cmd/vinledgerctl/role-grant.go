package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// roleGrantCmd represents the role grant command
var roleGrantCmd = &cobra.Command{
	Use:   "grant <address> <role>",
	Short: "Grant a role to an address",
	Long: `Grant a role (admin, service, insurer) to an address.

The grant is submitted as a signed transaction; the signing key must
belong to an admin. Granting an already-held role is a no-op.

Example:
  vinledgerctl role grant 0xabc... service --key-file admin.pem`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		address, role := args[0], args[1]

		receipt, err := newClient(cmd).GrantRole(cmd.Context(), address, role)
		if err != nil {
			reportClientError(err)
		}

		fmt.Printf("Granted %s to %s (tx %s)\n", role, address, receipt.Hash)
	},
}

func init() {
	roleCmd.AddCommand(roleGrantCmd)
	addKeyFlags(roleGrantCmd)
}
