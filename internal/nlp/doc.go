// Package nlp parses a single sentence into tokens, POS tags, named
// entities and dependency arcs for the sentence-level view.
//
// Two backends implement Parser: ProseParser runs jdkato/prose in process
// (tokens, tags and entities, no dependency parse), and CoreNLPClient calls
// a Stanford CoreNLP server over HTTP (full annotation including basic
// dependencies). CachedParser keeps recent results in an LRU cache, since
// the dashboard re-runs the whole page on every interaction.
//
// ParseTagged reads the tagged POS strings stored next to every sentence
// in the artifacts, so the token table does not need a backend at all.
package nlp
