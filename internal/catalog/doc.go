// Package catalog fetches per-repository metadata documents and models the
// resulting client-library descriptors.
//
// A descriptor is constructed only from a successfully fetched metadata
// document; a repository whose document is absent is skipped rather than
// reported as a failure. Descriptors carry a total order applied through
// SortDescriptors: release level descending, then title ascending.
package catalog
