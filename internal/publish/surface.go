package publish

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pagebuilder/internal/domain"
)

// Surface delivers a rendered document to a new, independent presentation
// target and returns where it can be found.
type Surface interface {
	Open(ctx context.Context, doc Document) (string, error)
}

// Opener presents a location (typically a file:// URL) to the user.
type Opener func(ctx context.Context, location string) error

// DirSurface writes each published document to its own file in Dir and hands
// the file URL to Opener. A failed write or open leaves no file behind.
type DirSurface struct {
	Dir    string
	Opener Opener
}

// NewDirSurface creates a DirSurface. A nil opener only writes the file.
func NewDirSurface(dir string, opener Opener) *DirSurface {
	return &DirSurface{Dir: dir, Opener: opener}
}

func (s *DirSurface) Open(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create publish dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".publish-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(doc.HTML); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close document: %w", err)
	}

	finalPath := filepath.Join(s.Dir, fmt.Sprintf("%s-%s.html", Slug(doc.Title), uuid.New().String()))
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("move document into place: %w", err)
	}

	location := fileURL(finalPath)
	if s.Opener != nil {
		if err := s.Opener(ctx, location); err != nil {
			os.Remove(finalPath)
			return "", fmt.Errorf("open %s: %w", location, err)
		}
	}
	return location, nil
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// Discard is the surface of headless processes: it can never open anything.
type Discard struct{}

func (Discard) Open(context.Context, Document) (string, error) {
	return "", domain.ErrNoSurface
}

// Slug turns a layout title into a lowercase ASCII file-name fragment.
func Slug(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > 40 {
		slug = strings.TrimSuffix(slug[:40], "-")
	}
	if slug == "" {
		return "layout"
	}
	return slug
}
