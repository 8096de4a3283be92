// Package model defines the core data structures used throughout corpusscope.
//
// This package contains the following main types:
//   - Domain: one of the subject-domain corpora plus the General reference corpus
//   - the read-only corpus records (WordFrequency, WordAttribute, Collocation, ...)
//   - FeatureTable: a domain by feature-code matrix of scores
//   - Selection: the widget state of one interaction
//   - Page, Block and ChartSpec: the renderer-independent output of a page
//   - Parse: the NLP analysis of a single sentence
//
// Models live in their own package so that the data access, page, report and
// server packages can share them without import cycles. Every type here is
// JSON-serializable because the JSON API and the JSON report write them as is.
package model
