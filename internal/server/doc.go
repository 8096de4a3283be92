// Package server serves the dashboard over HTTP with fiber.
//
// Every request re-runs the requested page pipeline; nothing is cached
// between requests except what the artifact store and the parser cache
// keep themselves. Routes:
//
//	GET /                          redirect to the introduction
//	GET /pages/:name               HTML page with the sidebar
//	GET /pages/:name/charts/:index PNG of the index-th chart of the page
//	GET /api/pages                 page list
//	GET /api/pages/:name           rendered page as JSON
//	GET /wordclouds/:domain        word cloud image
//	GET /healthz                   liveness and database ping
//
// Query parameters are the selection parameters of the model package.
package server
