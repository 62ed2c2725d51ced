package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vinledgerctl",
	Short: "Vehicle history ledger server and client",
	Long: `vinledgerctl runs the vehicle history ledger server and provides
client commands for registering vehicles, transferring ownership,
appending service/accident/odometer records, and managing roles.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
