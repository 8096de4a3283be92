package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xuri/excelize/v2"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/model"
)

// domainPlaceholder is replaced by the domain name in path templates.
const domainPlaceholder = "{domain}"

// Store loads spreadsheet, image and book artifacts below a root directory.
// It is safe for concurrent use.
type Store struct {
	root   string
	paths  config.Paths
	cache  *lru.Cache[string, cachedSheet]
	logger *slog.Logger
}

// Options configures a Store.
type Options struct {
	// Root is the directory the path templates are resolved against.
	Root string

	// Paths holds the artifact path templates.
	Paths config.Paths

	// CacheSize is the number of parsed sheets kept in memory.
	// Zero disables caching.
	CacheSize int

	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

// cachedSheet is a parsed sheet and the file state it was read from.
type cachedSheet struct {
	modTime time.Time
	size    int64
	rows    [][]string
}

// New creates a Store. The root directory must exist.
func New(opts Options) (*Store, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: artifact root %s", model.ErrArtifactMissing, opts.Root)
		}
		return nil, fmt.Errorf("failed to stat artifact root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifact root %s is not a directory", opts.Root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		root:   opts.Root,
		paths:  opts.Paths,
		logger: logger,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, cachedSheet](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Root returns the artifact root directory.
func (s *Store) Root() string {
	return s.root
}

// Path resolves a path template for a domain below the root.
func (s *Store) Path(template string, d model.Domain) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.ReplaceAll(template, domainPlaceholder, string(d))))
}

// readSheet returns the rows of a sheet. An empty sheet name selects the
// first sheet of the workbook.
func (s *Store) readSheet(path, sheet string) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	key := path + "\x00" + sheet
	if s.cache != nil {
		if c, ok := s.cache.Get(key); ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
			return c.rows, nil
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrArtifactMalformed, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Debug("failed to close workbook", "path", path, "error", cerr)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", model.ErrArtifactMalformed, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s sheet %q: %w", model.ErrArtifactMalformed, path, sheet, err)
	}
	s.logger.Debug("loaded sheet", "path", path, "sheet", sheet, "rows", len(rows))

	if s.cache != nil {
		s.cache.Add(key, cachedSheet{modTime: info.ModTime(), size: info.Size(), rows: rows})
	}
	return rows, nil
}

// sheetNames lists the sheets of a workbook.
func (s *Store) sheetNames(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrArtifactMalformed, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only workbook
	return f.GetSheetList(), nil
}

// loadTable reads a sheet and indexes its header row.
func (s *Store) loadTable(path, sheet string) (*table, error) {
	rows, err := s.readSheet(path, sheet)
	if err != nil {
		return nil, err
	}
	return newTable(path, rows)
}
