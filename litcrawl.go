// Package litcrawl provides a focused crawler for research-article pages.
// Every fetched page runs through an ordered chain of gates that decide
// whether it is a qualifying article; accepted pages yield a normalized
// metadata record, and every page contributes to an in-link popularity
// count for the URLs it links to.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, geoip/).
package litcrawl
