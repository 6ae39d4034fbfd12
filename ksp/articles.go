package ksp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const publishEndpoint = "/api/articles/publish"

// PublishArticle publishes a new article to the platform. When the
// request carries images the body is sent as multipart/form-data with
// one part per image; otherwise a plain JSON body is used. The
// frontmatter travels as a JSON-encoded string field in both encodings,
// which is what the server expects.
func (c *Client) PublishArticle(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if req.Title == "" || req.Content == "" {
		return nil, &Error{Kind: KindValidation, Message: "title and content are required"}
	}

	frontmatter := req.Frontmatter
	if frontmatter == nil {
		frontmatter = map[string]any{}
	}
	encodedFrontmatter, err := json.Marshal(frontmatter)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("frontmatter is not serializable: %s", err)}
	}

	var body []byte
	if len(req.Images) > 0 {
		form := &multipartForm{
			fields: map[string]string{
				"title":       req.Title,
				"content":     req.Content,
				"frontmatter": string(encodedFrontmatter),
				"file_path":   req.FilePath,
			},
			images: req.Images,
		}
		_, body, err = c.doRequest(ctx, http.MethodPost, publishEndpoint, nil, form, 0)
	} else {
		payload := map[string]any{
			"title":       req.Title,
			"content":     req.Content,
			"frontmatter": string(encodedFrontmatter),
			"file_path":   req.FilePath,
		}
		_, body, err = c.doRequest(ctx, http.MethodPost, publishEndpoint, payload, nil, 0)
	}
	if err != nil {
		return nil, err
	}

	var payload publishPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid publish response: %w", err)
	}
	for field, value := range map[string]string{
		"article_id":   payload.ArticleID,
		"published_id": payload.PublishedID,
		"web_url":      payload.WebURL,
		"created_at":   payload.CreatedAt,
	} {
		if value == "" {
			return nil, fmt.Errorf("invalid publish response: missing %q", field)
		}
	}

	images := payload.Images
	if images == nil {
		images = map[string]string{}
	}

	result := &PublishResult{
		ArticleID:   payload.ArticleID,
		PublishedID: payload.PublishedID,
		WebURL:      payload.WebURL,
		Images:      images,
		CreatedAt:   payload.CreatedAt,
	}

	c.logger.Info().
		Str("published_id", result.PublishedID).
		Str("web_url", result.WebURL).
		Msg("Article published")

	return result, nil
}

// GetArticle fetches article details by published ID. The response is
// returned as a raw map; the server does not document a stable schema
// for this endpoint, so no typing is imposed here.
func (c *Client) GetArticle(ctx context.Context, publishedID string) (map[string]any, error) {
	if publishedID == "" {
		return nil, &Error{Kind: KindValidation, Message: "published ID is required"}
	}

	_, body, err := c.doRequest(ctx, http.MethodGet, "/api/articles/"+publishedID, nil, nil, 0)
	if err != nil {
		return nil, err
	}

	var article map[string]any
	if err := json.Unmarshal(body, &article); err != nil {
		return nil, fmt.Errorf("invalid article response: %w", err)
	}
	return article, nil
}

// DeleteArticle deletes an article by published ID. Only the article
// owner or moderators can delete. The server archives by default rather
// than removing permanently, so a response without an archived field is
// reported as a soft delete.
func (c *Client) DeleteArticle(ctx context.Context, publishedID string) (*DeleteResult, error) {
	if publishedID == "" {
		return nil, &Error{Kind: KindValidation, Message: "published ID is required"}
	}

	_, body, err := c.doRequest(ctx, http.MethodDelete, "/api/articles/"+publishedID, nil, nil, 0)
	if err != nil {
		return nil, err
	}

	var payload deletePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid delete response: %w", err)
	}

	archived := true
	if payload.Archived != nil {
		archived = *payload.Archived
	}

	result := &DeleteResult{
		ArticleID:   payload.ArticleID,
		PublishedID: payload.PublishedID,
		DeletedAt:   payload.DeletedAt,
		Archived:    archived,
	}

	c.logger.Info().
		Str("published_id", publishedID).
		Bool("archived", archived).
		Msg("Article deleted")

	return result, nil
}
