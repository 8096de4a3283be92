// Package artifact reads the offline corpus artifacts: the per-domain xlsx
// workbooks, the word-cloud images and the book directory.
//
// Paths are built from config.Paths templates in which "{domain}" is
// replaced by the domain name, so only the closed model.Domain set can ever
// reach the file system. Parsed sheets are kept in an LRU cache keyed by
// path and sheet and revalidated against the file's modification time, so
// an artifact rebuilt on disk is picked up by the next interaction.
package artifact
