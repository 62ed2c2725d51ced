package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// roleShowCmd represents the role show command
var roleShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Show the roles an address holds",
	Long: `Show the roles an address currently holds.

With --vin, ownership of that VIN is included as the derived "owner"
role. The answer is advisory; the ledger re-checks on every write.

Example:
  vinledgerctl role show 0xabc...
  vinledgerctl role show 0xabc... --vin 1HGCM82633A004352`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vin, _ := cmd.Flags().GetString("vin")

		roles, err := newClient(cmd).Roles(cmd.Context(), args[0], vin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(roles) == 0 {
			fmt.Println("No roles")
			return
		}
		fmt.Println(strings.Join(roles, ", "))
	},
}

func init() {
	roleCmd.AddCommand(roleShowCmd)
	roleShowCmd.Flags().String("vin", "", "include derived ownership of this VIN")
}
