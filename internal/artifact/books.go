package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nao1215/corpusscope/internal/model"
)

// Books discovers the books of a domain: every file below the book
// directory whose path relative to that directory contains the domain
// name. The book name is the file name without its extension.
func (s *Store) Books(d model.Domain) ([]model.Book, error) {
	dir := s.Path(s.paths.BookDir, d)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: book directory %s", model.ErrArtifactMissing, dir)
		}
		return nil, fmt.Errorf("failed to stat book directory: %w", err)
	}

	var books []model.Book
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !strings.Contains(filepath.ToSlash(rel), string(d)) {
			return nil
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		books = append(books, model.Book{Name: name, Domain: d, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk book directory: %w", err)
	}

	sort.Slice(books, func(i, j int) bool { return books[i].Name < books[j].Name })
	return books, nil
}

// WordCloudPath returns the path of a domain's word-cloud image.
func (s *Store) WordCloudPath(d model.Domain) (string, error) {
	path := s.Path(s.paths.WordCloud, d)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", model.ErrArtifactMissing, path)
		}
		return "", fmt.Errorf("failed to stat word cloud: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", model.ErrArtifactMalformed, path)
	}
	return path, nil
}
