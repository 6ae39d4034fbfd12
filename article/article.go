// Package article parses markdown article files with YAML frontmatter
// into the metadata and content the publishing API expects.
package article

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Metadata is the article metadata carried in the frontmatter block.
// Fields the platform does not model explicitly stay in Extra so nothing
// the author wrote is dropped.
type Metadata struct {
	Title      string
	Tags       []string
	Category   string
	Difficulty string
	Author     string
	Extra      map[string]any
}

// Article is a parsed markdown file: its frontmatter metadata and the
// markdown body that follows it.
type Article struct {
	Metadata Metadata
	Content  string
	FilePath string
}

// ParseFile reads and parses a markdown article from disk.
func ParseFile(path string) (*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read article file: %w", err)
	}

	article, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	article.FilePath = path
	return article, nil
}

// Parse splits markdown source into a frontmatter block and body. The
// frontmatter must be the first thing in the file, fenced by --- lines.
func Parse(data []byte) (*Article, error) {
	source := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(source, frontmatterDelimiter+"\n") {
		return nil, fmt.Errorf("missing frontmatter block")
	}

	rest := source[len(frontmatterDelimiter)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return nil, fmt.Errorf("unterminated frontmatter block")
	}

	block := rest[:end]
	body := rest[end+len(frontmatterDelimiter)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}

	return &Article{
		Metadata: metadataFromMap(raw),
		Content:  strings.TrimLeft(body, "\n"),
	}, nil
}

// metadataFromMap lifts the known frontmatter keys into Metadata fields
// and keeps everything else in Extra.
func metadataFromMap(raw map[string]any) Metadata {
	md := Metadata{Extra: map[string]any{}}

	for key, value := range raw {
		switch key {
		case "title":
			md.Title, _ = value.(string)
		case "category":
			md.Category, _ = value.(string)
		case "difficulty":
			md.Difficulty, _ = value.(string)
		case "author":
			md.Author, _ = value.(string)
		case "tags":
			if items, ok := value.([]any); ok {
				for _, item := range items {
					if tag, ok := item.(string); ok {
						md.Tags = append(md.Tags, tag)
					}
				}
			}
		default:
			md.Extra[key] = value
		}
	}

	return md
}

// Validate checks that the frontmatter carries the fields the platform
// requires for publication.
func (m Metadata) Validate() error {
	var missing []string
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Category == "" {
		missing = append(missing, "category")
	}
	if m.Author == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return fmt.Errorf("frontmatter is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Frontmatter flattens the metadata back into the open map shape the API
// consumes.
func (m Metadata) Frontmatter() map[string]any {
	fm := map[string]any{}
	for k, v := range m.Extra {
		fm[k] = v
	}
	if m.Title != "" {
		fm["title"] = m.Title
	}
	if len(m.Tags) > 0 {
		fm["tags"] = m.Tags
	}
	if m.Category != "" {
		fm["category"] = m.Category
	}
	if m.Difficulty != "" {
		fm["difficulty"] = m.Difficulty
	}
	if m.Author != "" {
		fm["author"] = m.Author
	}
	return fm
}
