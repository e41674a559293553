// Package apitable renders sorted client descriptors into the
// reStructuredText list-table and badge definitions spliced into the
// documentation file, plus an optional console preview table.
package apitable
