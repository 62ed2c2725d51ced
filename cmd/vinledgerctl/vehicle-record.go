package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinledger/vinledger/pkg/client"
)

// vehicleServiceCmd represents the vehicle service command
var vehicleServiceCmd = &cobra.Command{
	Use:   "service <vin> <payload>",
	Short: "Append a service record",
	Long: `Append a service record to a vehicle's history.

Requires a key holding the service role.

Example:
  vinledgerctl vehicle service 1HGCM82633A004352 "oil change at 42000 km" --key-file shop.pem`,
	Args: cobra.ExactArgs(2),
	Run:  appendRecordRun((*client.Client).AddServiceRecord),
}

// vehicleAccidentCmd represents the vehicle accident command
var vehicleAccidentCmd = &cobra.Command{
	Use:   "accident <vin> <payload>",
	Short: "Append an accident record",
	Long: `Append an accident record to a vehicle's history.

Requires a key holding the insurer role.`,
	Args: cobra.ExactArgs(2),
	Run:  appendRecordRun((*client.Client).AddAccidentRecord),
}

// vehicleOdometerCmd represents the vehicle odometer command
var vehicleOdometerCmd = &cobra.Command{
	Use:   "odometer <vin> <reading>",
	Short: "Append an odometer record",
	Long: `Append an odometer reading to a vehicle's history.

Requires a key holding the service role.`,
	Args: cobra.ExactArgs(2),
	Run:  appendRecordRun((*client.Client).AddOdometerRecord),
}

// appendRecordRun builds the shared Run for the three record-append
// commands; they differ only in which client method they drive.
func appendRecordRun(
	appendFn func(*client.Client, context.Context, string, string) (*client.MutationResult, error),
) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		vin, payload := args[0], args[1]

		result, err := appendFn(newClient(cmd), cmd.Context(), vin, payload)
		if err != nil {
			reportClientError(err)
		}

		fmt.Printf("Appended record %d to %s (tx %s)\n", result.Receipt.Index, vin, result.Receipt.Hash)
		printHistory(result.History)
	}
}

func init() {
	vehicleCmd.AddCommand(vehicleServiceCmd)
	vehicleCmd.AddCommand(vehicleAccidentCmd)
	vehicleCmd.AddCommand(vehicleOdometerCmd)
	addKeyFlags(vehicleServiceCmd)
	addKeyFlags(vehicleAccidentCmd)
	addKeyFlags(vehicleOdometerCmd)
}
