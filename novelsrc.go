// Package novelsrc provides a declarative scraping pipeline for novel and
// manga reading sites. A source is described by a handful of descriptors
// (CSS selectors, URL templates, pagination rules and content-cleanup hooks)
// and the pipeline turns them into listing, detail, chapter-index and
// chapter-content retrieval.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, jsonparser/).
package novelsrc
