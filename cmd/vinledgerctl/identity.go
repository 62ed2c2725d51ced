package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinledger/vinledger/pkg/client"
	"github.com/vinledger/vinledger/pkg/config"
	"github.com/vinledger/vinledger/pkg/keys"
)

// keyPrompt builds the custodian prompt for a command. With --key-file
// the material is read from disk; otherwise the user is prompted once
// on stdin. Empty input cancels the operation without error.
func keyPrompt(cmd *cobra.Command) keys.PromptFunc {
	keyFile, _ := cmd.Flags().GetString("key-file")
	if keyFile != "" {
		return func(ctx context.Context) (string, error) {
			material, err := os.ReadFile(keyFile)
			if err != nil {
				return "", fmt.Errorf("failed to read key file: %w", err)
			}
			return string(material), nil
		}
	}
	return func(ctx context.Context) (string, error) {
		fmt.Fprintln(os.Stderr, "Paste signing key (PEM or hex), then EOF (Ctrl-D). Empty input cancels:")
		material, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(material), nil
	}
}

// newClient wires a pipeline client from configuration and the
// command's key flags.
func newClient(cmd *cobra.Command) *client.Client {
	custodian := keys.NewCustodian(keyPrompt(cmd))
	return client.New(config.Get(), custodian)
}

// addKeyFlags attaches the signing-key flags shared by all mutating
// client commands.
func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key-file", "k", "", "path to the signing key (PEM or hex)")
}

// reportClientError prints err the way the UI layer should see it:
// cancellation is a neutral outcome, backend reasons come through
// verbatim, and everything else is an error.
func reportClientError(err error) {
	if errors.Is(err, keys.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Cancelled; nothing was submitted")
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
