// Package main provides the entry point for the corpusscope CLI.
//
// corpusscope is a dashboard for comparing domain-specific corpora at the
// level of word, collocation and sentence. It reads precomputed artifacts
// (spreadsheets, word clouds and a corpora database) and serves them over
// HTTP or renders them to text, JSON and Markdown.
//
// Usage:
//
//	corpusscope serve --root ./artifacts
//	corpusscope page word --domain General,History --json
//	corpusscope export --dir ./site
//
// See --help for all available options.
package main

// main is the entry point for corpusscope.
func main() {
	Execute()
}
