package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var noConfirm bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <published-id>",
	Short: "Delete a published article",
	Long: `Delete an article you published.

Articles are archived (soft-deleted) by default; only moderators can
remove them permanently.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	defer client.Close()

	publishedID := args[0]

	if !noConfirm {
		fmt.Printf("Delete article %s? [y/N]: ", publishedID)
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
	}

	result, err := client.DeleteArticle(context.Background(), publishedID)
	if err != nil {
		return err
	}

	if result.Archived {
		fmt.Printf("Archived %s at %s\n", result.PublishedID, result.DeletedAt)
	} else {
		fmt.Printf("Permanently deleted %s at %s\n", result.PublishedID, result.DeletedAt)
	}
	return nil
}
