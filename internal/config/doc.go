// Package config provides configuration structures and utilities for
// corpusscope. It defines where the offline corpus artifacts live, how the
// relational store is opened, which NLP backend parses sentences and how
// the dashboard server and chart renderer behave.
//
// Values are layered: NewConfig defaults, then the YAML config file found by
// FindConfigFile, then CORPUSSCOPE_* environment variables (ApplyEnv), then
// CLI flags applied by the command layer.
package config
