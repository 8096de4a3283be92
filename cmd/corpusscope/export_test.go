package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/corpusscope/internal/config"
	"github.com/nao1215/corpusscope/internal/corpustest"
	"github.com/nao1215/corpusscope/internal/model"
)

func TestNewExportCmd(t *testing.T) {
	t.Parallel()

	cmd := NewExportCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "export" {
			t.Errorf("expected use 'export', got %q", cmd.Use)
		}
	})

	t.Run("defaults to markdown", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.DefValue != "markdown" {
			t.Errorf("expected default 'markdown', got %q", flag.DefValue)
		}
	})

	t.Run("continues on error by default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("continue-on-error")
		if flag == nil {
			t.Fatal("expected continue-on-error flag")
		}
		if flag.DefValue != "true" {
			t.Errorf("expected default 'true', got %q", flag.DefValue)
		}
	})
}

func readManifest(t *testing.T, dir string) []manifestEntry {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	return entries
}

func TestRunExportCmd(t *testing.T) {
	t.Parallel()

	root := corpustest.Corpus(t)
	base := []string{"--root", root, "--nlp", config.BackendNone}
	pages := 2 + 2*len(model.AllDomains()) + len(model.SentenceDomains())

	t.Run("exports every page as JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out, err := runRoot(t, append([]string{"export", "-d", dir, "-f", "json", "--concurrency", "3"}, base...)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Export completed") {
			t.Errorf("expected completion message, got %q", out)
		}

		entries := readManifest(t, dir)
		if len(entries) != pages {
			t.Fatalf("expected %d manifest entries, got %d", pages, len(entries))
		}
		for i, e := range entries {
			if i > 0 && entries[i-1].Key >= e.Key {
				t.Errorf("manifest not sorted at %q", e.Key)
			}
			if e.Error != "" {
				t.Errorf("unexpected error for %s: %s", e.Key, e.Error)
			}

			data, err := os.ReadFile(filepath.Join(dir, e.File))
			if err != nil {
				t.Errorf("failed to read %s: %v", e.File, err)
				continue
			}
			var p model.Page
			if err := json.Unmarshal(data, &p); err != nil {
				t.Errorf("%s is not a JSON page: %v", e.File, err)
				continue
			}
			if p.Name != e.Page {
				t.Errorf("expected page %q in %s, got %q", e.Page, e.File, p.Name)
			}
		}
	})

	t.Run("exports Markdown with charts and word clouds", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := runRoot(t, append([]string{"export", "-d", dir}, base...)...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(dir, "word-History.md"))
		if err != nil {
			t.Fatalf("failed to read word page: %v", err)
		}
		if !strings.Contains(string(content), "](charts/word-History-") {
			t.Error("expected chart links in the word page")
		}
		if !strings.Contains(string(content), "](wordcloud/History.png)") {
			t.Error("expected word cloud link in the word page")
		}

		charts, err := filepath.Glob(filepath.Join(dir, "charts", "word-History-*.png"))
		if err != nil {
			t.Fatal(err)
		}
		if len(charts) == 0 {
			t.Error("expected rendered chart files")
		}
		if _, err := os.Stat(filepath.Join(dir, "wordcloud", "History.png")); err != nil {
			t.Errorf("expected copied word cloud: %v", err)
		}
	})

	t.Run("no-charts keeps charts inline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := runRoot(t, append([]string{"export", "-d", dir, "--no-charts"}, base...)...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "charts")); !os.IsNotExist(err) {
			t.Errorf("expected no charts directory, got %v", err)
		}
	})

	t.Run("records failed pages in the manifest", func(t *testing.T) {
		t.Parallel()

		broken := corpustest.Corpus(t)
		if err := os.Remove(filepath.Join(broken, "word_freq", "History_word_frequencies.xlsx")); err != nil {
			t.Fatal(err)
		}

		dir := t.TempDir()
		args := []string{"export", "-d", dir, "-f", "json", "--continue-on-error=false", "--root", broken, "--nlp", config.BackendNone}
		_, err := runRoot(t, args...)
		if err == nil {
			t.Fatal("expected error for the failed page")
		}
		if !strings.Contains(err.Error(), "word-History") {
			t.Errorf("expected failed key in error, got %v", err)
		}

		var failed []string
		for _, e := range readManifest(t, dir) {
			if e.Error != "" {
				failed = append(failed, e.Key)
				if e.File != "" {
					t.Errorf("expected no file for failed page %s", e.Key)
				}
			}
		}
		if len(failed) != 1 || failed[0] != "word-History" {
			t.Errorf("expected only word-History to fail, got %v", failed)
		}
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := runRoot(t, append([]string{"export", "-d", t.TempDir(), "-f", "pdf"}, base...)...)
		if err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
