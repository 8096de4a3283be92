// Package page builds the dashboard pages: Introduction, Overview,
// Word-level Analysis, Collocation and Sentence-level Analysis.
//
// Every page is a pipeline.Pipeline of named sections. A section reads
// the artifacts it needs, filters them for the current model.Selection
// and appends headings, tables, charts, images, parses and notices to the
// page. Pages hold no state between renders; each interaction builds a
// fresh pipeline.
package page
