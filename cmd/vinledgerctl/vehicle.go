package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// vehicleCmd represents the vehicle command
var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage vehicle histories",
	Long:  `Register vehicles, transfer ownership, and append history records.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'vehicle' requires a subcommand (register, transfer, service, accident, odometer, history)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
}
