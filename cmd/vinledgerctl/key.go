package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinledger/vinledger/pkg/keys"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage signing keys",
	Long:  `Manage the ECDSA keys used to sign ledger submissions.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'key' requires a subcommand (generate, address)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// keyGenerateCmd represents the key generate command
var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a signing keypair",
	Long: `
Generate a new ECDSA P-256 signing keypair.

The private key is written to stdout in PEM form and the derived ledger
address to stderr. Keep the private key out of shell history and logs;
the ledger only ever sees the public half.

Example:

$ vinledgerctl key generate > admin.pem
`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := keys.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		defer key.Destroy()

		pem, err := key.PrivatePem()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode key: %v\n", err)
			os.Exit(1)
		}
		address, err := key.Address()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to derive address: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s", pem)
		fmt.Fprintf(os.Stderr, "Address: %s\n", address)
	},
}

// keyAddressCmd represents the key address command
var keyAddressCmd = &cobra.Command{
	Use:   "address <key-file>",
	Short: "Show the ledger address for a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		material, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read key file: %v\n", err)
			os.Exit(1)
		}

		key, err := keys.ParseKey(string(material))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse key: %v\n", err)
			os.Exit(1)
		}
		defer key.Destroy()

		address, err := key.Address()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to derive address: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(address)
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyAddressCmd)
}
