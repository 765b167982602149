// Package readmeta turns GitHub-hosted course and book repositories into
// navigable, titled chapters. It derives presentable titles and summaries
// from loosely-structured Markdown, extracts tables of contents, and stores
// the results for listing and search.
//
// This package contains domain types, interfaces and the pure Markdown
// heuristics, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, github/, goldmark/).
package readmeta
