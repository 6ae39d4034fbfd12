package ksp

// PublishRequest carries the inputs for publishing an article.
type PublishRequest struct {
	// Title is the article title. Required.
	Title string
	// Content is the processed markdown body, with image references
	// rewritten to relative paths. Required.
	Content string
	// Frontmatter is the parsed article metadata. It is serialized as a
	// JSON string field on the wire.
	Frontmatter map[string]any
	// Images maps filename to raw file bytes. When non-empty the request
	// is sent as multipart/form-data.
	Images map[string][]byte
	// FilePath is the original source file path, sent for tracking.
	FilePath string
}

// PublishResult is the outcome of a successful publish call.
type PublishResult struct {
	ArticleID   string
	PublishedID string
	WebURL      string
	// Images maps uploaded filename to its hosted URL. Never nil.
	Images map[string]string
	// CreatedAt is the server-side creation timestamp, ISO-8601 by
	// convention. Kept opaque, not parsed.
	CreatedAt string
}

// DeleteResult is the outcome of a successful delete call.
type DeleteResult struct {
	ArticleID   string
	PublishedID string
	DeletedAt   string
	// Archived is true for a soft delete, false for permanent removal.
	// The server defaults to soft delete.
	Archived bool
}

// publishPayload mirrors the publish endpoint's response body.
type publishPayload struct {
	ArticleID   string            `json:"article_id"`
	PublishedID string            `json:"published_id"`
	WebURL      string            `json:"web_url"`
	Images      map[string]string `json:"images"`
	CreatedAt   string            `json:"created_at"`
}

// deletePayload mirrors the delete endpoint's response body. Archived is
// a pointer so an absent field can fall back to the server's soft-delete
// default.
type deletePayload struct {
	ArticleID   string `json:"article_id"`
	PublishedID string `json:"published_id"`
	DeletedAt   string `json:"deleted_at"`
	Archived    *bool  `json:"archived"`
}
