// Package updater orchestrates the client-library catalog refresh: it lists
// the organization's repositories, filters them to the client-library family,
// fetches per-repository metadata, sorts the resulting descriptors, and
// rewrites the managed region of the documentation file with the generated
// table. The package also exposes the Cobra command wiring for the update
// operation.
package updater
