package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinledger/vinledger/pkg/model"
)

// vehicleHistoryCmd represents the vehicle history command
var vehicleHistoryCmd = &cobra.Command{
	Use:   "history <vin>",
	Short: "Show a vehicle's full history",
	Long: `Reconstruct and print the full ordered history for a VIN.

An unregistered VIN prints an empty history; a history that cannot be
fully reconstructed is reported as an error rather than truncated.

Example:
  vinledgerctl vehicle history 1HGCM82633A004352`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		history, err := newClient(cmd).History(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printHistory(history)
	},
}

func init() {
	vehicleCmd.AddCommand(vehicleHistoryCmd)
}

func printHistory(records []model.VehicleRecord) {
	if len(records) == 0 {
		fmt.Println("No records")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tTIMESTAMP\tBY\tPAYLOAD")
	for _, record := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			record.Idx,
			record.RecordType,
			time.Unix(record.Timestamp, 0).UTC().Format(time.RFC3339),
			record.RecordedBy,
			record.Payload,
		)
	}
	_ = w.Flush()
}
