package article

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds parallel image file reads.
const maxConcurrentReads = 10

var imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)`)

// ImageRefs returns the local image paths referenced by the article
// body, in order of first appearance. Remote URLs are skipped; only
// files that ship alongside the article need uploading.
func (a *Article) ImageRefs() []string {
	var refs []string
	seen := map[string]bool{}

	for _, match := range imageRefPattern.FindAllStringSubmatch(a.Content, -1) {
		ref := match[1]
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			continue
		}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	return refs
}

// LoadImages reads the article's referenced images from disk, resolving
// relative references against baseDir. The result maps the image's base
// filename to its bytes, which is the shape the publish call uploads.
func (a *Article) LoadImages(baseDir string) (map[string][]byte, error) {
	refs := a.ImageRefs()
	if len(refs) == 0 {
		return map[string][]byte{}, nil
	}

	images := make(map[string][]byte, len(refs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentReads)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			path := ref
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, ref)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read image %s: %w", ref, err)
			}

			mu.Lock()
			images[filepath.Base(ref)] = data
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return images, nil
}
