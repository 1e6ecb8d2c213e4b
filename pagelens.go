// Package pagelens provides a content extraction engine for arbitrary web
// pages. Given raw HTML it decides whether the page (or regions of it)
// represent commercial products, editorial articles, or contact records,
// extracts normalized structured data, and ranks the results by confidence.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/, gemini/).
package pagelens
