// Package source opens script documents and yields their text page by page.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jackzampolin/sides/internal/pdftext"
)

// A Source yields the text of one script document.
type Source interface {
	// Pages returns every page's lines, in document order. Line order
	// within a page is preserved.
	Pages(ctx context.Context) ([][]string, error)

	// Name returns the base name of the document, without extension,
	// used to derive output artifact names.
	Name() string
}

// Open opens a script by path. PDFs are read through pdftext; anything
// else is treated as plain text with pages separated by form feeds.
func Open(path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("script not found: %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &pdfSource{paths: []string{path}, name: baseName(path)}, nil
	}
	return &textSource{path: path}, nil
}

// OpenParts opens a script split across several PDF files
// (e.g. script-1.pdf, script-2.pdf), ordered by numeric suffix.
func OpenParts(paths ...string) (Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no script paths provided")
	}
	if len(paths) == 1 {
		return Open(paths[0])
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("script not found: %s", p)
		}
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			return nil, fmt.Errorf("multi-part scripts must be PDFs: %s", p)
		}
	}
	sorted := sortByPartNumber(paths)
	return &pdfSource{paths: sorted, name: baseName(sorted[0])}, nil
}

type pdfSource struct {
	paths []string
	name  string
}

func (s *pdfSource) Pages(ctx context.Context) ([][]string, error) {
	var pages [][]string
	for _, p := range s.paths {
		pp, err := pdftext.Pages(ctx, p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, pp...)
	}
	return pages, nil
}

func (s *pdfSource) Name() string { return s.name }

type textSource struct {
	path string
}

func (s *textSource) Pages(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var pages [][]string
	for _, page := range strings.Split(string(data), "\f") {
		page = strings.TrimRight(page, "\n")
		if page == "" {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, strings.Split(page, "\n"))
	}
	return pages, nil
}

func (s *textSource) Name() string { return baseName(s.path) }

func baseName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	// Strip a part suffix like "-1" so multi-part scripts share a name.
	re := regexp.MustCompile(`-\d+$`)
	return re.ReplaceAllString(name, "")
}

// sortByPartNumber sorts PDF paths by their numeric suffix.
// e.g. ["ep-2.pdf", "ep-1.pdf", "ep-10.pdf"] -> ["ep-1.pdf", "ep-2.pdf", "ep-10.pdf"]
func sortByPartNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	re := regexp.MustCompile(`-(\d+)\.pdf$`)

	sort.Slice(sorted, func(i, j int) bool {
		mi := re.FindStringSubmatch(strings.ToLower(sorted[i]))
		mj := re.FindStringSubmatch(strings.ToLower(sorted[j]))

		if len(mi) > 1 && len(mj) > 1 {
			ni, _ := strconv.Atoi(mi[1])
			nj, _ := strconv.Atoi(mj[1])
			return ni < nj
		}

		// Files without numbers come first.
		if len(mi) > 1 {
			return false
		}
		if len(mj) > 1 {
			return true
		}

		return sorted[i] < sorted[j]
	})

	return sorted
}
