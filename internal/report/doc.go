// Package report writes rendered pages in the formats the CLI offers.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown documents with tables and mermaid pie charts
//
// Page content lives in the model package; writers only walk a page's
// blocks, so a new format never touches the pages themselves.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
