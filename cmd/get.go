package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:     "get <published-id>",
	Short:   "Fetch article details",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	defer client.Close()

	details, err := client.GetArticle(context.Background(), args[0])
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format article details: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
