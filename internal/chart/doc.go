// Package chart renders model.ChartSpec values to PNG images with go-chart.
//
// Pie and line charts use the go-chart chart types directly. Bar-like kinds
// (bar, hbar, grouped_bar, stacked_hbar and histogram) are drawn as
// rectangles over a go-chart canvas so that horizontal, grouped and
// absolute-value stacked bars share one code path.
package chart
