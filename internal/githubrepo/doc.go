// Package githubrepo lists an organization's repositories through the GitHub
// REST API and filters them to the client-library family.
//
// The ListingClient pages through the organization listing endpoint using an
// explicit RepositoryPageIterator that tracks pagination state from the
// response Link header. The Filter applies the naming-prefix, exclusion-list,
// and archived-repository rules as a pure predicate.
package githubrepo
