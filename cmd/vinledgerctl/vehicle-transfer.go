package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// vehicleTransferCmd represents the vehicle transfer command
var vehicleTransferCmd = &cobra.Command{
	Use:   "transfer <vin> <new-owner-address>",
	Short: "Transfer vehicle ownership",
	Long: `Transfer ownership of a registered vehicle.

Only the current owner's key can sign a transfer. An "unauthorized"
rejection for a key that owned the vehicle moments ago means another
transfer got there first.

Example:
  vinledgerctl vehicle transfer 1HGCM82633A004352 0xdef... --key-file owner.pem`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vin, newOwner := args[0], args[1]
		payload, _ := cmd.Flags().GetString("payload")

		result, err := newClient(cmd).TransferOwnership(cmd.Context(), vin, newOwner, payload)
		if err != nil {
			reportClientError(err)
		}

		fmt.Printf("Transferred %s to %s (tx %s)\n", vin, newOwner, result.Receipt.Hash)
		printHistory(result.History)
	},
}

func init() {
	vehicleCmd.AddCommand(vehicleTransferCmd)
	addKeyFlags(vehicleTransferCmd)
	vehicleTransferCmd.Flags().String("payload", "", "opaque record payload")
}
