// Package analysis holds the deterministic table transformations behind
// every page: filtering, stable sorting, head-limiting and the small
// aggregations (word-length counts, percent histograms, tick spacing).
// Nothing here does I/O or keeps state.
package analysis
