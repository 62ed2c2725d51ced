package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// grantsFile is the on-disk shape for role apply: a list of grants.
type grantsFile struct {
	Grants []grantEntry `yaml:"grants"`
}

type grantEntry struct {
	Address string `yaml:"address"`
	Role    string `yaml:"role"`
}

// roleApplyCmd represents the role apply command
var roleApplyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply a grants file",
	Long: `Apply a YAML grants file, submitting one signed grant per entry.

Grants are idempotent, so re-applying a file is safe. The file shape:

  grants:
    - address: "0xabc..."
      role: service
    - address: "0xdef..."
      role: insurer

Example:
  vinledgerctl role apply grants.yml --key-file admin.pem`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read grants file: %v\n", err)
			os.Exit(1)
		}

		var file grantsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse grants file: %v\n", err)
			os.Exit(1)
		}
		if len(file.Grants) == 0 {
			fmt.Println("No grants to apply")
			return
		}

		c := newClient(cmd)
		for _, grant := range file.Grants {
			receipt, err := c.GrantRole(cmd.Context(), grant.Address, grant.Role)
			if err != nil {
				reportClientError(err)
			}
			fmt.Printf("Granted %s to %s (tx %s)\n", grant.Role, grant.Address, receipt.Hash)
		}
		fmt.Printf("Applied %d grant(s)\n", len(file.Grants))
	},
}

func init() {
	roleCmd.AddCommand(roleApplyCmd)
	addKeyFlags(roleApplyCmd)
}
