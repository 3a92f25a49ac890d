// Package munidocs discovers, downloads, and canonically names financial
// report documents published on municipal websites. It crawls an entity's
// site with multiple fallback strategies, caches discovered document URLs so
// repeat runs skip discovery, reconciles new links against already-acquired
// files, and renames each acquired file to a stable content-derived name
// while recording full provenance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, rod/, gemini/, pdftotext/).
package munidocs
