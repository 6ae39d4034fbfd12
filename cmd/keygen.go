package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/apikey"
)

var (
	keyCount      int
	productionKey bool
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate API keys in the platform's format",
	Long: `Generate random API keys matching the platform's sk_ format.

By default test keys (sk_test_...) are generated. These are useful for
local development against a self-hosted instance; production keys are
normally issued by the platform itself.`,
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().IntVarP(&keyCount, "count", "n", 1, "number of keys to generate")
	keygenCmd.Flags().BoolVar(&productionKey, "production", false, "generate production-format keys instead of test keys")
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if keyCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	keys, err := apikey.GenerateBatch(keyCount, !productionKey)
	if err != nil {
		return fmt.Errorf("failed to generate keys: %w", err)
	}

	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}
