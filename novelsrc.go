// Package novelsrc provides a declarative engine for scraping web novel
// sites. A SourceConfig describes one site with URL templates and selectors;
// the engine resolves requests from it and extracts listings, novel details,
// chapter lists and chapter text from the fetched pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, otto/).
package novelsrc
