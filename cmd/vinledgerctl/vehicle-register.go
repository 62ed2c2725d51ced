package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// vehicleRegisterCmd represents the vehicle register command
var vehicleRegisterCmd = &cobra.Command{
	Use:   "register <vin> <owner-address>",
	Short: "Register a vehicle",
	Long: `Register a vehicle, opening its history with a Registration record.

Requires an admin signing key.

Example:
  vinledgerctl vehicle register 1HGCM82633A004352 0xabc... --key-file admin.pem`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vin, owner := args[0], args[1]
		payload, _ := cmd.Flags().GetString("payload")

		result, err := newClient(cmd).RegisterVehicle(cmd.Context(), vin, owner, payload)
		if err != nil {
			reportClientError(err)
		}

		fmt.Printf("Registered %s (tx %s)\n", vin, result.Receipt.Hash)
		printHistory(result.History)
	},
}

func init() {
	vehicleCmd.AddCommand(vehicleRegisterCmd)
	addKeyFlags(vehicleRegisterCmd)
	vehicleRegisterCmd.Flags().String("payload", "", "opaque record payload")
}
