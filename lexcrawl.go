// Package lexcrawl extracts structured metadata from legal-document pages
// of the EUR-Lex portal and crawls the portal to discover documents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package lexcrawl
