package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/article"
	"github.com/BugBounty-MockingBird/bugbounty-ksp-api-client/ksp"
)

var skipImages bool

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <file.md>",
	Short: "Publish a markdown article",
	Long: `Publish a markdown article to the platform.

The file must start with a YAML frontmatter block carrying at least
title, category, and author. Local images referenced in the body are
uploaded alongside the article.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&skipImages, "skip-images", false, "publish without uploading referenced images")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	defer client.Close()

	path := args[0]
	parsed, err := article.ParseFile(path)
	if err != nil {
		return err
	}

	if err := parsed.Metadata.Validate(); err != nil {
		return err
	}

	images := map[string][]byte{}
	if !skipImages {
		images, err = parsed.LoadImages(filepath.Dir(path))
		if err != nil {
			return err
		}
		if len(images) > 0 {
			logger.Info().Int("count", len(images)).Msg("Uploading referenced images")
		}
	}

	result, err := client.PublishArticle(context.Background(), ksp.PublishRequest{
		Title:       parsed.Metadata.Title,
		Content:     parsed.Content,
		Frontmatter: parsed.Metadata.Frontmatter(),
		Images:      images,
		FilePath:    path,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Published %s\n", result.PublishedID)
	fmt.Printf("  URL: %s\n", result.WebURL)
	for name, url := range result.Images {
		fmt.Printf("  %s -> %s\n", name, url)
	}
	return nil
}
