// Package pipeline runs the sections of a dashboard page in sequence.
//
// A page is rendered by a Pipeline of Steps. Each step reads what it needs
// from the artifact and database stores and appends blocks (headings,
// tables, charts, notices) to the shared model.Page. Steps run in order;
// a failing step halts the render unless the pipeline is configured to
// continue, in which case the failure is shown inline as an error notice.
//
// BatchProcessor renders many pages concurrently with errgroup, which the
// export command uses to write every page for every domain.
package pipeline
